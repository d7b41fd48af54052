package companyhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consulta-cnpj/consulta-cnpj/internal/company"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", formatCurrency(1234.56))
	assert.Equal(t, "R$ 0,00", formatCurrency(0))
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(11) 98765-4321", formatPhone(company.Phone{AreaCode: "11", Number: "987654321"}))
	assert.Equal(t, "(21) 3333-4444", formatPhone(company.Phone{AreaCode: "21", Number: "33334444"}))
	assert.Equal(t, "3333-4444", formatPhone(company.Phone{Number: "33334444"}))
	assert.Equal(t, "(11) 123", formatPhone(company.Phone{AreaCode: "11", Number: "123"}))
}

func TestFormatDocument(t *testing.T) {
	assert.Equal(t, "123.456.789-09", formatDocument("12345678909"))
	assert.Equal(t, "11.222.333/0001-81", formatDocument("11222333000181"))
	assert.Equal(t, "***456789**", formatDocument("***456789**"))
	assert.Equal(t, "", formatDocument(""))
}

func TestFormatCEP(t *testing.T) {
	assert.Equal(t, "01310-100", formatCEP("01310100"))
	assert.Equal(t, "01310-100", formatCEP("01310-100"))
	assert.Equal(t, "123", formatCEP("123"))
}

func TestIsActiveStatus(t *testing.T) {
	assert.True(t, isActiveStatus("Ativa"))
	assert.True(t, isActiveStatus(" ATIVA "))
	assert.False(t, isActiveStatus("Inativa"))
	assert.False(t, isActiveStatus(company.StatusNotInformed))
}

func TestBuildResultView(t *testing.T) {
	rec := sampleRecord()
	rec.PrimaryEmail = &company.Email{Address: "contato@padaria.com.br"}
	rec.SpecialTaxRegimeEntries = []company.SpecialTaxRegimeEntry{{"number": "200400029", "approved": true}}

	vm := buildResultView(rec)

	assert.Equal(t, "11.222.333/0001-81", vm.CNPJ)
	assert.True(t, vm.StatusActive)
	assert.Equal(t, "R$ 150.000,00", vm.Capital)
	assert.Equal(t, "Rua das Flores, 100", vm.Address.Line)
	assert.Equal(t, "São Paulo/SP", vm.Address.CityState)
	assert.Equal(t, "contato@padaria.com.br", vm.PrimaryEmail)
	assert.Equal(t, []string{"approved: true, number: 200400029"}, vm.SpecialRegimes)
	if assert.Len(t, vm.Members, 2) {
		assert.Equal(t, "Bruno Lima", vm.Members[0].Name)
		assert.Equal(t, "***123456**", vm.Members[1].Document)
	}
	assert.Equal(t, "Ana Souza", rec.LegalEntity.Members[0].PersonName, "record is not reordered")
}
