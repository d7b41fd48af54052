package companyhttp

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/consulta-cnpj/consulta-cnpj/internal/cnpj"
	"github.com/consulta-cnpj/consulta-cnpj/internal/company"
)

var brazil = message.NewPrinter(language.BrazilianPortuguese)

type resultView struct {
	CNPJ         string
	TradeAlias   string
	LegalName    string
	Status       string
	StatusActive bool
	StatusDate   string
	FoundedDate  string
	LastUpdated  string
	HeadOffice   bool

	Nature        string
	Size          string
	Capital       string
	SimplesOptant bool
	MEIOptant     bool

	Address      addressView
	Phones       []string
	Emails       []string
	PrimaryEmail string

	PrimaryActivity     company.Activity
	SecondaryActivities []company.Activity
	Members             []memberView
	StateRegistrations  []registrationView
	SpecialRegimes      []string
}

type addressView struct {
	Line      string
	District  string
	CityState string
	ZipCode   string
}

type memberView struct {
	Name     string
	Role     string
	Since    string
	AgeRange string
	Document string
}

type registrationView struct {
	Number  string
	State   string
	Type    string
	Enabled bool
	Status  string
}

func buildResultView(rec company.Record) resultView {
	vm := resultView{
		CNPJ:         cnpj.Format(rec.Identifier),
		TradeAlias:   rec.TradeAlias,
		LegalName:    firstNonEmpty(rec.LegalName, rec.LegalEntity.Name),
		Status:       rec.RegistrationStatus.Text,
		StatusActive: isActiveStatus(rec.RegistrationStatus.Text),
		StatusDate:   rec.StatusDate,
		FoundedDate:  rec.FoundedDate,
		LastUpdated:  rec.LastUpdatedDate,
		HeadOffice:   rec.IsHeadOffice,

		Nature:        rec.LegalEntity.Nature,
		Size:          rec.LegalEntity.Size,
		Capital:       formatCurrency(rec.LegalEntity.EquityCapital),
		SimplesOptant: rec.LegalEntity.SimplifiedTaxRegimeFlag,
		MEIOptant:     rec.LegalEntity.MicroEntrepreneurFlag,

		Address:             buildAddressView(rec.Address),
		PrimaryActivity:     rec.PrimaryActivity,
		SecondaryActivities: rec.SecondaryActivities,
	}
	if rec.PrimaryEmail != nil {
		vm.PrimaryEmail = rec.PrimaryEmail.Address
	}
	for _, p := range rec.PhoneNumbers {
		vm.Phones = append(vm.Phones, formatPhone(p))
	}
	for _, e := range rec.EmailAddresses {
		vm.Emails = append(vm.Emails, e.Address)
	}
	for _, m := range company.SortMembersBySince(rec.LegalEntity.Members) {
		vm.Members = append(vm.Members, memberView{
			Name:     m.PersonName,
			Role:     m.RoleText,
			Since:    m.MemberSince,
			AgeRange: m.PersonAgeRange,
			Document: formatDocument(m.TaxID),
		})
	}
	for _, r := range rec.StateTaxRegistrations {
		vm.StateRegistrations = append(vm.StateRegistrations, registrationView{
			Number:  r.Number,
			State:   r.State,
			Type:    r.RegistrationType,
			Enabled: r.IsEnabled,
			Status:  r.StatusText,
		})
	}
	for _, entry := range rec.SpecialTaxRegimeEntries {
		vm.SpecialRegimes = append(vm.SpecialRegimes, describeEntry(entry))
	}
	return vm
}

func buildAddressView(a company.Address) addressView {
	line := joinNonEmpty(", ", a.Street, a.Number, a.Details)
	cityState := joinNonEmpty("/", a.City, a.State)
	return addressView{
		Line:      line,
		District:  a.District,
		CityState: cityState,
		ZipCode:   formatCEP(a.ZipCode),
	}
}

// isActiveStatus matches "Ativa" but not "Inativa".
func isActiveStatus(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "ativa")
}

func formatCurrency(amount float64) string {
	return brazil.Sprint(currency.Symbol(currency.BRL.Amount(amount)))
}

func formatCEP(value string) string {
	digits := cnpj.Clean(value)
	if len(digits) != 8 {
		return value
	}
	return digits[:5] + "-" + digits[5:]
}

func formatPhone(p company.Phone) string {
	number := cnpj.Clean(p.Number)
	var local string
	switch len(number) {
	case 9:
		local = number[:5] + "-" + number[5:]
	case 8:
		local = number[:4] + "-" + number[4:]
	default:
		local = p.Number
	}
	if p.AreaCode == "" {
		return local
	}
	return fmt.Sprintf("(%s) %s", p.AreaCode, local)
}

// formatDocument renders a partner document as CPF or CNPJ. Masked values
// keep their original form.
func formatDocument(value string) string {
	if strings.ContainsAny(value, "*") {
		return value
	}
	digits := cnpj.Clean(value)
	switch len(digits) {
	case 11:
		return fmt.Sprintf("%s.%s.%s-%s", digits[:3], digits[3:6], digits[6:9], digits[9:])
	case cnpj.Length:
		return cnpj.Format(digits)
	default:
		return value
	}
}

func describeEntry(entry company.SpecialTaxRegimeEntry) string {
	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, entry[k]))
	}
	return strings.Join(parts, ", ")
}

func joinNonEmpty(sep string, values ...string) string {
	kept := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, sep)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
