package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-api/pkg/config"
)

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CART_TTL_HOURS", "12")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "db.local", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 12, cfg.Redis.CartTTLHours)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p@ss:word", DBName: "db", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%3Aword@h:5432/db?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "JWT_EXPIRATION_MINUTES", "CART_TTL_HOURS", "DB_SSLMODE", "ADMIN_NAME"} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 72, cfg.Redis.CartTTLHours)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "Administrador", cfg.Admin.Name)
}
