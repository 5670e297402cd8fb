// AngelaMos | 2026
// config_test.go

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	c := &Config{}
	c.Database.URL = "postgres://localhost:5432/tracker"
	c.Redis.URL = "redis://localhost:6379/0"
	c.JWT.PrivateKeyPath = "keys/private.pem"
	c.JWT.PublicKeyPath = "keys/public.pem"
	c.Signup.AllowedDomains = []string{"atelierlabs.io"}
	c.Server.ReadTimeout = 30 * time.Second
	c.Server.WriteTimeout = 30 * time.Second
	return c
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validate(validConfig()))
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing database url", func(c *Config) { c.Database.URL = "" }},
		{"missing redis url", func(c *Config) { c.Redis.URL = "" }},
		{"missing private key", func(c *Config) {
			c.JWT.PrivateKeyPath = ""
		}},
		{"empty signup domains", func(c *Config) {
			c.Signup.AllowedDomains = nil
		}},
		{"zero read timeout", func(c *Config) {
			c.Server.ReadTimeout = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			require.Error(t, validate(c))
		})
	}
}

func TestValidateRejectsWildcardWithCredentials(t *testing.T) {
	c := validConfig()
	c.CORS.AllowCredentials = true
	c.CORS.AllowedOrigins = []string{"*"}

	require.Error(t, validate(c))

	c.CORS.AllowedOrigins = []string{"https://app.atelierlabs.io"}
	require.NoError(t, validate(c))
}

func TestValidateProductionTelemetry(t *testing.T) {
	c := validConfig()
	c.App.Environment = "production"
	c.Otel.Enabled = true
	c.Otel.Insecure = true

	require.Error(t, validate(c))

	c.Otel.Insecure = false
	require.NoError(t, validate(c))
}

func TestEnvKeyReplacer(t *testing.T) {
	require.Equal(t, "database.url", envKeyReplacer("DATABASE_URL"))
	require.Equal(t, "otel.endpoint",
		envKeyReplacer("OTEL_EXPORTER_OTLP_ENDPOINT"))
	require.Empty(t, envKeyReplacer("LANG"),
		"unmapped environment variables are dropped")
}

func TestNotifyConfigured(t *testing.T) {
	c := &Config{}
	require.False(t, c.NotifyConfigured())

	c.Notify.ProviderURL = "https://mail.test/send"
	require.False(t, c.NotifyConfigured(), "api key still missing")

	c.Notify.APIKey = "key"
	require.True(t, c.NotifyConfigured())
}
