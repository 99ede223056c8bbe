package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DatabaseConfig{
		Host:     "db.internal",
		Port:     "3307",
		User:     "biblio",
		Password: "secret",
		DBName:   "biblio",
	}.DSN()

	assert.Equal(t, "biblio:secret@tcp(db.internal:3307)/biblio?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}

func TestHealthCheckWithoutConnection(t *testing.T) {
	assert.Error(t, HealthCheck())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "@hourly", cfg.SweepSchedule)
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("APP_MODE", "staging")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadModePrefixes(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_DB_HOST", "prod-db")
	t.Setenv("DEV_DB_HOST", "dev-db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod-db", cfg.Database.Host)
}

func TestGetAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")

	dev := &Config{AppMode: "dev"}
	assert.Equal(t, "*", dev.GetAllowedOrigins())

	t.Setenv("ALLOWED_ORIGINS", "https://library.example.org")
	prod := &Config{AppMode: "prod"}
	assert.Equal(t, "https://library.example.org", prod.GetAllowedOrigins())
}
