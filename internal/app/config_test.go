package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CNPJA_API_TOKEN", "token")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, "https://open.cnpja.com", cfg.CNPJABaseURL)
	assert.Equal(t, 10*time.Second, cfg.CNPJATimeout)
	assert.Equal(t, "light", cfg.UIDefaultTheme)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("CNPJA_API_TOKEN", "")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"theme":    {"UI_DEFAULT_THEME", "sepia"},
		"format":   {"LOG_FORMAT", "xml"},
		"base url": {"CNPJA_BASE_URL", "not a url"},
		"env":      {"APP_ENV", "qa"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("CNPJA_API_TOKEN", "token")
			t.Setenv(kv[0], kv[1])

			_, err := LoadConfig()

			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestIsProductionNilSafe(t *testing.T) {
	var cfg *Config
	assert.False(t, cfg.IsProduction())
	assert.True(t, (&Config{AppEnv: "production"}).IsProduction())
}
