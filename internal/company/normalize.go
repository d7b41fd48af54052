package company

import (
	"encoding/json"
	"strings"

	"github.com/consulta-cnpj/consulta-cnpj/internal/cnpj"
)

// Defaults used when a scalar state registration is expanded into a list.
const (
	defaultRegistrationType   = "Normal"
	defaultRegistrationStatus = "Ativa"
)

// corporateOwnership lists the ownership markers meaning an e-mail belongs to
// the legal entity rather than to an individual.
var corporateOwnership = map[string]bool{
	"CORPORATE":    true,
	"COMPANY":      true,
	"EMPRESA":      true,
	"LEGAL_ENTITY": true,
}

// Normalize maps a raw registry payload onto the canonical Record. It never
// fails: missing or malformed fields fall back to their defaults. Upstream
// ordering of every list is preserved.
func Normalize(raw Raw) Record {
	entity := raw.object("company")
	address := mapAddress(raw.object("address"))
	legal := mapLegalEntity(raw, entity)
	emails := mapEmails(raw.list("emails"))

	rec := Record{
		Identifier:      mapIdentifier(firstPresent(raw, "taxId", "cnpj")),
		TradeAlias:      raw.text("alias", "tradeName"),
		LegalName:       legal.Name,
		FoundedDate:     raw.text("founded"),
		LastUpdatedDate: raw.text("updated"),
		StatusDate:      raw.text("statusDate"),
		IsHeadOffice:    resolveFlag(parseFlagField(raw.value("head"))),

		RegistrationStatus: mapStatus(raw.value("status")),
		LegalEntity:        legal,
		Address:            address,

		PhoneNumbers:   mapPhones(raw.list("phones")),
		EmailAddresses: emails,
		PrimaryEmail:   primaryEmail(emails),

		PrimaryActivity:     mapActivity(firstPresent(raw, "mainActivity", "primaryActivity")),
		SecondaryActivities: mapActivities(firstList(raw, "sideActivities", "secondaryActivities")),

		StateTaxRegistrations:   mapStateRegistrations(parseStateRegistrationSource(raw), address.State),
		SpecialTaxRegimeEntries: mapSpecialTaxRegime(raw.list("suframa")),
	}
	return rec
}

// mapIdentifier returns the 14-digit CNPJ or "" when the value cannot be one.
// Numeric values lose their leading zeros in JSON and are padded back.
func mapIdentifier(v any) string {
	digits := onlyDigits(scalarText(v))
	switch v.(type) {
	case json.Number, float64, int, int64:
		if digits != "" && len(digits) < cnpj.Length {
			digits = strings.Repeat("0", cnpj.Length-len(digits)) + digits
		}
	}
	if len(digits) != cnpj.Length {
		return ""
	}
	return digits
}

func mapStatus(v any) Status {
	text := textOf(v, "text", "description")
	if text == "" {
		text = StatusNotInformed
	}
	return Status{Text: text}
}

// mapLegalEntity prefers the nested company object and falls back to the flat
// top-level fields of older payloads.
func mapLegalEntity(raw, entity Raw) LegalEntity {
	pick := func(key string) any {
		if v := entity.value(key); v != nil {
			return v
		}
		return raw.value(key)
	}
	return LegalEntity{
		Name:                    firstText(entity.text("name"), raw.text("name", "legalName")),
		Nature:                  textOf(pick("nature"), "text", "description"),
		Size:                    textOf(pick("size"), "text", "acronym"),
		EquityCapital:           scalarAmount(pick("equity")),
		SimplifiedTaxRegimeFlag: resolveFlag(parseFlagField(pick("simples"))),
		MicroEntrepreneurFlag:   resolveFlag(parseFlagField(pick("simei"))),
		Members:                 mapMembers(parseMemberSource(raw)),
	}
}

func mapMembers(src memberSource) []Member {
	members := []Member{}
	switch s := src.(type) {
	case flatPartners:
		for _, item := range s {
			p := asObject(item)
			if p == nil {
				continue
			}
			members = append(members, Member{
				PersonName:     p.text("name"),
				PersonAgeRange: p.text("age"),
				TaxID:          p.text("taxId"),
				RoleText:       roleText(p),
				MemberSince:    p.text("since"),
			})
		}
	case nestedMembers:
		for _, item := range s {
			m := asObject(item)
			if m == nil {
				continue
			}
			person := m.object("person")
			members = append(members, Member{
				PersonName:     firstText(person.text("name"), m.text("name")),
				PersonAgeRange: firstText(person.text("age"), m.text("age")),
				TaxID:          firstText(person.text("taxId"), m.text("taxId")),
				RoleText:       roleText(m),
				MemberSince:    m.text("since"),
			})
		}
	case noMembers:
	}
	return members
}

// roleText accepts every known alias of the member qualification.
func roleText(entry Raw) string {
	for _, key := range []string{"role", "qualification"} {
		if text := textOf(entry.value(key), "text", "description"); text != "" {
			return text
		}
	}
	return ""
}

func mapAddress(addr Raw) Address {
	return Address{
		Street:       addr.text("street"),
		Number:       addr.text("number"),
		Details:      addr.text("details", "complement"),
		District:     addr.text("district"),
		City:         textOf(addr.value("city"), "name", "text"),
		State:        textOf(addr.value("state"), "code", "acronym", "name"),
		ZipCode:      addr.text("zip", "zipCode", "cep"),
		Country:      textOf(addr.value("country"), "name", "text"),
		Municipality: textOf(addr.value("municipality"), "code", "id"),
	}
}

func mapPhones(items []any) []Phone {
	phones := []Phone{}
	for _, item := range items {
		if phone, ok := mapPhone(parsePhoneSource(item)); ok {
			phones = append(phones, phone)
		}
	}
	return phones
}

func mapPhone(src phoneSource) (Phone, bool) {
	switch p := src.(type) {
	case splitPhone:
		return Phone{AreaCode: p.area, Number: p.number}, true
	case joinedPhone:
		return splitJoinedPhone(string(p)), true
	case absentPhone:
		return Phone{}, false
	}
	return Phone{}, false
}

// splitJoinedPhone separates the two-digit area code of a national number. A
// leading 55 country code is dropped first.
func splitJoinedPhone(digits string) Phone {
	if (len(digits) == 12 || len(digits) == 13) && strings.HasPrefix(digits, "55") {
		digits = digits[2:]
	}
	if len(digits) == 10 || len(digits) == 11 {
		return Phone{AreaCode: digits[:2], Number: digits[2:]}
	}
	return Phone{Number: digits}
}

func mapEmails(items []any) []Email {
	emails := []Email{}
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				emails = append(emails, Email{Address: s})
			}
			continue
		}
		e := asObject(item)
		address := e.text("address", "email")
		if address == "" {
			continue
		}
		emails = append(emails, Email{
			Address:       address,
			OwnershipKind: e.text("ownership", "owner", "type"),
		})
	}
	return emails
}

// primaryEmail picks the first corporate address, then the first address.
func primaryEmail(emails []Email) *Email {
	if len(emails) == 0 {
		return nil
	}
	for _, e := range emails {
		if corporateOwnership[strings.ToUpper(e.OwnershipKind)] {
			found := e
			return &found
		}
	}
	first := emails[0]
	return &first
}

func mapActivity(v any) Activity {
	a := asObject(v)
	if a == nil {
		return Activity{Text: scalarText(v)}
	}
	return Activity{
		Code: a.text("id", "code"),
		Text: a.text("text", "description"),
	}
}

func mapActivities(items []any) []Activity {
	activities := []Activity{}
	for _, item := range items {
		activity := mapActivity(item)
		if activity.Code == "" && activity.Text == "" {
			continue
		}
		activities = append(activities, activity)
	}
	return activities
}

func mapStateRegistrations(src stateRegistrationSource, addressState string) []StateTaxRegistration {
	registrations := []StateTaxRegistration{}
	switch s := src.(type) {
	case registrationList:
		for _, item := range s {
			r := asObject(item)
			if r == nil {
				continue
			}
			enabled, _ := scalarFlag(r.value("enabled"))
			registrations = append(registrations, StateTaxRegistration{
				RegistrationType: textOf(r.value("type"), "text", "description"),
				Number:           r.text("number"),
				State:            textOf(r.value("state"), "code", "acronym", "name"),
				IsEnabled:        enabled,
				StatusText:       textOf(r.value("status"), "text", "description"),
			})
		}
	case registrationScalar:
		registrations = append(registrations, StateTaxRegistration{
			RegistrationType: defaultRegistrationType,
			Number:           string(s),
			State:            addressState,
			IsEnabled:        true,
			StatusText:       defaultRegistrationStatus,
		})
	case registrationAbsent:
	}
	return registrations
}

func mapSpecialTaxRegime(items []any) []SpecialTaxRegimeEntry {
	entries := []SpecialTaxRegimeEntry{}
	for _, item := range items {
		if obj := asObject(item); obj != nil {
			entry := make(SpecialTaxRegimeEntry, len(obj))
			for k, v := range obj {
				entry[k] = v
			}
			entries = append(entries, entry)
			continue
		}
		if item != nil {
			entries = append(entries, SpecialTaxRegimeEntry{"value": item})
		}
	}
	return entries
}

func firstPresent(raw Raw, keys ...string) any {
	for _, key := range keys {
		if v := raw.value(key); v != nil {
			return v
		}
	}
	return nil
}

func firstList(raw Raw, keys ...string) []any {
	for _, key := range keys {
		if items := raw.list(key); len(items) > 0 {
			return items
		}
	}
	return nil
}

func firstText(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
