package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindez/controle-brindes/pkg/config"
)

func TestFromViper_Padroes(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "brindez.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 10, cfg.Rules.JustificationMinLength)
	assert.Equal(t, int64(10), cfg.Rules.StockMinimum)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
}

func TestFromViper_Sobrescritas(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("MOCK_DATA_PATH", "mock.json")
	v.Set("JUSTIFICATION_MIN_LENGTH", "15")
	v.Set("STOCK_MINIMUM", 3)
	v.Set("CACHE_TTL_SECONDS", "5")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "mock.json", cfg.Storage.MockDataPath)
	assert.Equal(t, 15, cfg.Rules.JustificationMinLength)
	assert.Equal(t, int64(3), cfg.Rules.StockMinimum)
	assert.Equal(t, 5*time.Second, cfg.Cache.TTL)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mysql")
	_, err := config.FromViper(v)
	require.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "brindez", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/brindez?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
