package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-tracker-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "User", cfg.Stock.DefaultActor)
	assert.Equal(t, "Quantity updated via admin/form", cfg.Stock.DefaultReason)
	assert.Equal(t, "Stock adjustment - {product_id}", cfg.Stock.ReferenceFormat)
	assert.Empty(t, cfg.JWT.Secret, "sin JWT_SECRET no hay middleware de actor")
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("STOCK_DEFAULT_ACTOR", "bodega-central")
	t.Setenv("STOCK_REFERENCE_FORMAT", "ADJ-{sku}")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "bodega-central", cfg.Stock.DefaultActor)
	assert.Equal(t, "ADJ-{sku}", cfg.Stock.ReferenceFormat)
}

func TestLoad_PuertoInvalido(t *testing.T) {
	t.Setenv("HTTP_PORT", "abc")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss:word",
		DBName: "stock", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/stock?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro@host/db"
	assert.Equal(t, "postgres://otro@host/db", c.ConnectionString())
}
