package companyhttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consulta-cnpj/consulta-cnpj/internal/company"
	"github.com/consulta-cnpj/consulta-cnpj/internal/view"
)

type stubLookupService struct {
	record    company.Record
	err       error
	lastInput string
	calls     int
}

func (s *stubLookupService) Lookup(ctx context.Context, input string) (company.Record, error) {
	s.calls++
	s.lastInput = input
	return s.record, s.err
}

func sampleRecord() company.Record {
	return company.Record{
		Identifier:         "11222333000181",
		TradeAlias:         "Padaria Central",
		LegalName:          "Padaria Central Ltda",
		FoundedDate:        "2005-03-15",
		IsHeadOffice:       true,
		RegistrationStatus: company.Status{Text: "Ativa"},
		LegalEntity: company.LegalEntity{
			Name:          "Padaria Central Ltda",
			Nature:        "Sociedade Empresária Limitada",
			EquityCapital: 150000,
			Members: []company.Member{
				{PersonName: "Ana Souza", RoleText: "Sócio-Administrador", MemberSince: "2005-03-15", TaxID: "***123456**"},
				{PersonName: "Bruno Lima", RoleText: "Sócio", MemberSince: "2020-07-01"},
			},
		},
		Address:               company.Address{Street: "Rua das Flores", Number: "100", City: "São Paulo", State: "SP", ZipCode: "01310100"},
		PhoneNumbers:          []company.Phone{{AreaCode: "11", Number: "987654321"}},
		EmailAddresses:        []company.Email{},
		PrimaryActivity:       company.Activity{Code: "4721102", Text: "Padaria e confeitaria"},
		SecondaryActivities:   []company.Activity{},
		StateTaxRegistrations: []company.StateTaxRegistration{},
	}
}

func newTestRouter(t *testing.T, service Service) http.Handler {
	t.Helper()
	templates, err := view.NewEngine()
	require.NoError(t, err)
	r := chi.NewRouter()
	NewHandler(nil, service, templates, view.ThemeLight).MountRoutes(r)
	return r
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAPILookupSuccess(t *testing.T) {
	service := &stubLookupService{record: sampleRecord()}
	router := newTestRouter(t, service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cnpj?cnpj=11.222.333/0001-81", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "11.222.333/0001-81", service.lastInput)

	body := decodeEnvelope(t, rr)
	assert.Equal(t, false, body["error"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Padaria Central", data["tradeAlias"])
	assert.Equal(t, []any{}, data["emailAddresses"])
}

func TestAPILookupErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		kind    company.Kind
		status  int
		message string
	}{
		{company.KindMalformedInput, http.StatusBadRequest, company.MessageLength},
		{company.KindChecksumInvalid, http.StatusBadRequest, company.MessageChecksum},
		{company.KindUpstreamNotFound, http.StatusNotFound, company.MessageNotFound},
		{company.KindUpstreamAuthFailure, http.StatusUnauthorized, company.MessageAuthFailure},
		{company.KindUpstreamRateLimited, http.StatusTooManyRequests, company.MessageRateLimited},
		{company.KindUpstreamMalformedResponse, http.StatusBadGateway, company.MessageMalformed},
		{company.KindUpstreamUnavailable, http.StatusBadGateway, company.MessageUpstreamDown},
		{company.KindInternal, http.StatusInternalServerError, company.MessageInternal},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			router := newTestRouter(t, &stubLookupService{err: company.NewError(tc.kind, "", nil)})

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cnpj?cnpj=1", nil))

			assert.Equal(t, tc.status, rr.Code)
			body := decodeEnvelope(t, rr)
			assert.Equal(t, true, body["error"])
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestAPIPreflightAndMethodNotAllowed(t *testing.T) {
	service := &stubLookupService{}
	router := newTestRouter(t, service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/cnpj", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "GET, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", rr.Header().Get("Access-Control-Allow-Headers"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/cnpj", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"error":true,"message":"Método não permitido"}`, rr.Body.String())

	assert.Zero(t, service.calls)
}

func TestSearchPageUsesThemeCookie(t *testing.T) {
	router := newTestRouter(t, &stubLookupService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `data-theme="dark"`)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "theme", Value: "<script>"})
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Contains(t, rr.Body.String(), `data-theme="light"`)
}

func TestDefaultThemeFromConfig(t *testing.T) {
	templates, err := view.NewEngine()
	require.NoError(t, err)
	r := chi.NewRouter()
	NewHandler(nil, &stubLookupService{}, templates, view.ThemeDark).MountRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rr.Body.String(), `data-theme="dark"`)
}

func TestResultPageRendersTabs(t *testing.T) {
	router := newTestRouter(t, &stubLookupService{record: sampleRecord()})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/consulta?cnpj=11222333000181", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Resumo")
	assert.Contains(t, body, "Detalhes")
	assert.Contains(t, body, "11.222.333/0001-81")
	assert.Contains(t, body, "badge-active")
	assert.Contains(t, body, "(11) 98765-4321")
	assert.Contains(t, body, "15/03/2005")
	assert.Contains(t, body, "01310-100")
	assert.Less(t, strings.Index(body, "Bruno Lima"), strings.Index(body, "Ana Souza"), "newest member first")
}

func TestResultPageShowsLookupError(t *testing.T) {
	service := &stubLookupService{err: company.NewError(company.KindChecksumInvalid, "", nil)}
	router := newTestRouter(t, service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/consulta?cnpj=11222333000180", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), company.MessageChecksum)
	assert.Contains(t, rr.Body.String(), `value="11222333000180"`)
}
