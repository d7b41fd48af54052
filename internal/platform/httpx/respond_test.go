package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessWrapsData(t *testing.T) {
	rr := httptest.NewRecorder()
	Success(rr, map[string]string{"tradeAlias": "Loja"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":false,"data":{"tradeAlias":"Loja"}}`, rr.Body.String())
}

func TestFailureOmitsData(t *testing.T) {
	rr := httptest.NewRecorder()
	Failure(rr, http.StatusNotFound, "Empresa não encontrada")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "Empresa não encontrada", body["message"])
	assert.NotContains(t, body, "data")
}
