package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Environment(t *testing.T) {
	tests := []struct {
		environment string
		dev, prod   bool
	}{
		{"development", true, false},
		{"production", false, true},
		{"staging", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			cfg := &AppConfig{Environment: tt.environment}
			assert.Equal(t, tt.dev, cfg.IsDevelopment())
			assert.Equal(t, tt.prod, cfg.IsProduction())
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	cfg := &ServerConfig{Host: "0.0.0.0", Port: 5000}
	assert.Equal(t, "0.0.0.0:5000", cfg.Address())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"development is valid", func(c *Config) {}, ""},
		{"empty database host", func(c *Config) { c.Database.Host = "" }, "database host is required"},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"prefix without slash", func(c *Config) { c.Server.APIPrefix = "api" }, "api prefix"},
		{"negative tx timeout", func(c *Config) { c.Database.TxTimeout = -time.Second }, "transaction timeout"},
		{"tracing without endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Endpoint = ""
		}, "tracing endpoint"},
		{"details in production", func(c *Config) {
			c.App.Environment = "production"
			c.App.ExposeErrorDetails = true
		}, "must not be exposed"},
		{"production without details", func(c *Config) {
			c.App.Environment = "production"
			c.App.ExposeErrorDetails = false
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Development()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDevelopment(t *testing.T) {
	cfg := Development()

	assert.Equal(t, "LaserCare", cfg.App.Name)
	assert.True(t, cfg.App.ExposeErrorDetails)
	assert.Equal(t, "/api", cfg.Server.APIPrefix)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "lasercare", cfg.Database.Database)
	assert.Zero(t, cfg.Database.TxTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestTest(t *testing.T) {
	cfg := Test()

	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, "lasercare_test", cfg.Database.Database)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path", "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "LaserCare", cfg.App.Name)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.APIPrefix)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.App.ExposeErrorDetails, "development exposes details by default")
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
app:
  environment: staging
server:
  port: 7000
  api_prefix: /v1
database:
  host: db.internal
  tx_timeout: 10s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lasercare.yaml"), []byte(yaml), 0o600))

	cfg, err := Load(dir, "lasercare")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.False(t, cfg.App.ExposeErrorDetails)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/v1", cfg.Server.APIPrefix)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 10*time.Second, cfg.Database.TxTimeout)
}

func TestLoad_WithEnvOverride(t *testing.T) {
	t.Setenv("LASERCARE_SERVER_PORT", "3000")

	cfg, err := Load("/nonexistent/path", "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadFromEnv_LegacyNames(t *testing.T) {
	t.Setenv("PORT", "5050")
	t.Setenv("DB_HOST", "db.clinic.local")
	t.Setenv("DB_NAME", "clinic")
	t.Setenv("FRONTEND_URL", "https://clinic.example.com")
	t.Setenv("NODE_ENV", "production")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 5050, cfg.Server.Port)
	assert.Equal(t, "db.clinic.local", cfg.Database.Host)
	assert.Equal(t, "clinic", cfg.Database.Database)
	assert.Equal(t, []string{"https://clinic.example.com"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.App.IsProduction())
	assert.False(t, cfg.App.ExposeErrorDetails)
}

func TestLoadFromEnv_ExplicitErrorDetails(t *testing.T) {
	t.Setenv("LASERCARE_APP_ENVIRONMENT", "staging")
	t.Setenv("LASERCARE_APP_EXPOSE_ERROR_DETAILS", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.App.ExposeErrorDetails)
}

func TestLoadFromEnv_PrefixedWinsOverLegacy(t *testing.T) {
	t.Setenv("LASERCARE_DATABASE_HOST", "primary")
	t.Setenv("DB_HOST", "legacy")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "primary", cfg.Database.Host)
}

func TestDevelopment_DerivedFromDefaults(t *testing.T) {
	cfg := Development()

	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, time.Hour, cfg.Database.MaxConnLifetime)
	assert.Equal(t, 12*time.Hour, cfg.CORS.MaxAge)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "localhost:5000", cfg.Server.Address())
	assert.NoError(t, cfg.Validate())
}
