// Package testing switches the process into test mode when imported, so
// binaries built around app.InTestMode stay inert under go test.
package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("CONSULTA_TEST_MODE", "1")
		if os.Getenv("CNPJA_BASE_URL") == "" {
			_ = os.Setenv("CNPJA_BASE_URL", "http://127.0.0.1:0")
		}
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
