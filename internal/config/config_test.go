package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, int32(5), cfg.Database.MinConns)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "1h", cfg.JWT.AccessExpiration)
	assert.Equal(t, 5*time.Second, cfg.Scan.LockTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCAN_LOCK_TIMEOUT", "750ms")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 750*time.Millisecond, cfg.Scan.LockTimeout)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.App.AllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid db port", "DB_PORT", "abc"},
		{"invalid lock timeout", "SCAN_LOCK_TIMEOUT", "soon"},
		{"non positive lock timeout", "SCAN_LOCK_TIMEOUT", "0s"},
		{"invalid auto migrate", "DB_AUTO_MIGRATE", "maybe"},
		{"invalid access expiration", "JWT_ACCESS_EXPIRATION_TIME", "forever"},
		{"min conns above max", "DB_MIN_CONNS", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Password: "secret", MaxConns: 10, MinConns: 1},
		JWT:      JWTConfig{Secret: "", AccessExpiration: "1h"},
		Scan:     ScanConfig{LockTimeout: time.Second},
	}
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET_KEY is required")

	cfg.JWT.Secret = "jwt-secret"
	cfg.Database.Password = ""
	assert.EqualError(t, cfg.Validate(), "DB_PASSWORD is required")
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "punctoo",
		Password: "pw",
		Name:     "punctoo",
		SSLMode:  "require",
	}}
	assert.Equal(t, "postgres://punctoo:pw@db:5433/punctoo?sslmode=require", cfg.DatabaseURL())
}
