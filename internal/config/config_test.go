package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "data/meapi.db", cfg.DB.DSN)
	assert.Equal(t, "seed.json", cfg.DB.SeedPath)
	assert.False(t, cfg.DB.TransactionalReplace)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadConfigFromYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
app:
  port: "8080"
db:
  driver: postgres
  dsn: postgres://me:me@localhost:5432/meapi
  transactional_replace: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("APP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.True(t, cfg.DB.TransactionalReplace)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestLoadConfigRejectsRedisDBOutOfRange(t *testing.T) {
	t.Setenv("REDIS_DB", "16")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
