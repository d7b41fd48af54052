// Package company holds the canonical company record, the normalizer that maps
// raw registry payloads onto it and the lookup service.
package company

// StatusNotInformed is the status text used when the registry omits one.
const StatusNotInformed = "Não informado"

// Record is the canonical company record handed to the rendering layer. It is
// built fresh for every lookup and never mutated afterwards. Sequence fields
// are always non-nil.
type Record struct {
	Identifier      string `json:"identifier"`
	TradeAlias      string `json:"tradeAlias"`
	LegalName       string `json:"legalName"`
	FoundedDate     string `json:"foundedDate"`
	LastUpdatedDate string `json:"lastUpdatedDate"`
	StatusDate      string `json:"statusDate"`
	IsHeadOffice    bool   `json:"isHeadOffice"`

	RegistrationStatus Status      `json:"registrationStatus"`
	LegalEntity        LegalEntity `json:"legalEntity"`
	Address            Address     `json:"address"`

	PhoneNumbers   []Phone `json:"phoneNumbers"`
	EmailAddresses []Email `json:"emailAddresses"`
	PrimaryEmail   *Email  `json:"primaryEmail,omitempty"`

	PrimaryActivity     Activity   `json:"primaryActivity"`
	SecondaryActivities []Activity `json:"secondaryActivities"`

	StateTaxRegistrations   []StateTaxRegistration  `json:"stateTaxRegistrations"`
	SpecialTaxRegimeEntries []SpecialTaxRegimeEntry `json:"specialTaxRegimeEntries"`
}

// Status is the registration status of the company.
type Status struct {
	Text string `json:"text"`
}

// LegalEntity groups the data of the legal person behind the establishment.
type LegalEntity struct {
	Name                    string   `json:"name"`
	Nature                  string   `json:"nature"`
	Size                    string   `json:"size"`
	EquityCapital           float64  `json:"equityCapital"`
	SimplifiedTaxRegimeFlag bool     `json:"simplifiedTaxRegimeFlag"`
	MicroEntrepreneurFlag   bool     `json:"microEntrepreneurFlag"`
	Members                 []Member `json:"members"`
}

// Member is a partner or administrator of the company.
type Member struct {
	PersonName     string `json:"personName"`
	PersonAgeRange string `json:"personAgeRange"`
	TaxID          string `json:"taxId"`
	RoleText       string `json:"roleText"`
	MemberSince    string `json:"memberSince"`
}

// Address is the establishment address. Every field is optional.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Details      string `json:"details"`
	District     string `json:"district"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
	Municipality string `json:"municipality"`
}

// Phone keeps area code and local number apart; they are only joined when
// rendered.
type Phone struct {
	AreaCode string `json:"areaCode"`
	Number   string `json:"number"`
}

// Email is a contact address and who it belongs to.
type Email struct {
	Address       string `json:"address"`
	OwnershipKind string `json:"ownershipKind"`
}

// Activity is an economic activity (CNAE) code and description.
type Activity struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// StateTaxRegistration is a state-level tax registration (inscrição estadual).
type StateTaxRegistration struct {
	RegistrationType string `json:"registrationType"`
	Number           string `json:"number"`
	State            string `json:"state"`
	IsEnabled        bool   `json:"isEnabled"`
	StatusText       string `json:"statusText"`
}

// SpecialTaxRegimeEntry is an opaque SUFRAMA registration passed through as
// received.
type SpecialTaxRegimeEntry map[string]any
