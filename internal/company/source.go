package company

// The registry has shipped several incompatible payload shapes. Each ambiguous
// field is first classified into one of the variants below, then mapped by a
// single function that switches over every variant.

// stateRegistrationSource is one of registrationList, registrationScalar or
// registrationAbsent.
type stateRegistrationSource interface{ stateRegistrationSource() }

type (
	registrationList   []any
	registrationScalar string
	registrationAbsent struct{}
)

func (registrationList) stateRegistrationSource()   {}
func (registrationScalar) stateRegistrationSource() {}
func (registrationAbsent) stateRegistrationSource() {}

func parseStateRegistrationSource(raw Raw) stateRegistrationSource {
	if items := raw.list("registrations"); len(items) > 0 {
		return registrationList(items)
	}
	if number := scalarText(raw.value("stateRegistration")); number != "" {
		return registrationScalar(number)
	}
	return registrationAbsent{}
}

// memberSource is one of flatPartners, nestedMembers or noMembers.
type memberSource interface{ memberSource() }

type (
	// flatPartners: [{name, age, role, since, taxId}]
	flatPartners []any
	// nestedMembers: company.members[{person{name, age, taxId}, role{text}, since}]
	nestedMembers []any
	noMembers     struct{}
)

func (flatPartners) memberSource()  {}
func (nestedMembers) memberSource() {}
func (noMembers) memberSource()     {}

func parseMemberSource(raw Raw) memberSource {
	if items := raw.list("partners"); hasObject(items) {
		return flatPartners(items)
	}
	if items := raw.object("company").list("members"); hasObject(items) {
		return nestedMembers(items)
	}
	return noMembers{}
}

// hasObject reports whether any entry of items is a JSON object.
func hasObject(items []any) bool {
	for _, item := range items {
		if asObject(item) != nil {
			return true
		}
	}
	return false
}

// textField is a value that appears either as a plain scalar ("SP") or as an
// object carrying the text under some key ({"code": "SP", "name": "São Paulo"}).
type textField interface{ textField() }

type (
	plainText   string
	namedObject Raw
	absentText  struct{}
)

func (plainText) textField()   {}
func (namedObject) textField() {}
func (absentText) textField()  {}

func parseTextField(v any) textField {
	if obj := asObject(v); obj != nil {
		return namedObject(obj)
	}
	if s := scalarText(v); s != "" {
		return plainText(s)
	}
	return absentText{}
}

// resolveText returns the plain value, or the first non-empty key of an
// object form.
func resolveText(f textField, keys ...string) string {
	switch v := f.(type) {
	case plainText:
		return string(v)
	case namedObject:
		return Raw(v).text(keys...)
	case absentText:
		return ""
	}
	return ""
}

// textOf classifies v and resolves it in one step.
func textOf(v any, keys ...string) string {
	return resolveText(parseTextField(v), keys...)
}

// phoneSource is one of splitPhone, joinedPhone or absentPhone.
type phoneSource interface{ phoneSource() }

type (
	splitPhone struct {
		area   string
		number string
	}
	joinedPhone string
	absentPhone struct{}
)

func (splitPhone) phoneSource()  {}
func (joinedPhone) phoneSource() {}
func (absentPhone) phoneSource() {}

func parsePhoneSource(v any) phoneSource {
	if obj := asObject(v); obj != nil {
		area := onlyDigits(obj.text("area", "areaCode", "ddd"))
		number := onlyDigits(obj.text("number", "phone"))
		switch {
		case area != "" && number != "":
			return splitPhone{area: area, number: number}
		case number != "":
			return joinedPhone(number)
		}
		return absentPhone{}
	}
	if number := onlyDigits(scalarText(v)); number != "" {
		return joinedPhone(number)
	}
	return absentPhone{}
}

// flagField is one of plainFlag, optionObject or absentFlag. Tax regime flags
// arrive as bare booleans or as {"optant": true, "since": "..."}.
type flagField interface{ flagField() }

type (
	plainFlag    bool
	optionObject Raw
	absentFlag   struct{}
)

func (plainFlag) flagField()    {}
func (optionObject) flagField() {}
func (absentFlag) flagField()   {}

func parseFlagField(v any) flagField {
	if obj := asObject(v); obj != nil {
		return optionObject(obj)
	}
	if b, ok := scalarFlag(v); ok {
		return plainFlag(b)
	}
	return absentFlag{}
}

func resolveFlag(f flagField) bool {
	switch v := f.(type) {
	case plainFlag:
		return bool(v)
	case optionObject:
		b, _ := scalarFlag(Raw(v).value("optant"))
		return b
	case absentFlag:
		return false
	}
	return false
}
