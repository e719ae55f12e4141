package config_test

import (
	"os"
	"path/filepath"
	"taskKeeper/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// TestLoad_MissingFile тестирует значения по умолчанию
func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddr())
	assert.Equal(t, config.StorageFile, cfg.Storage.Type)
	assert.Equal(t, 5*time.Second, cfg.Store.WriteTimeout)
	assert.True(t, cfg.Server.LocalOnly)
	assert.Equal(t, 30*time.Second, cfg.Worker.ResyncEvery)
}

// TestLoad_File тестирует чтение YAML поверх значений по умолчанию
func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  allowed_origins: ["http://localhost:5173"]
logging:
  development: false
storage:
  type: Redis
  redis:
    addr: "cache:6379"
    db: 2
worker:
  resync_every: 1m
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.GetServerAddr())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, config.StorageRedis, cfg.Storage.Type)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, "taskkeeper:", cfg.Storage.Redis.Prefix)
	assert.Equal(t, time.Minute, cfg.Worker.ResyncEvery)
}

// TestLoad_EnvOverrides тестирует переопределение через окружение
func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "storage:\n  type: file\n")
	t.Setenv("TASKKEEPER_STORAGE", "postgres")
	t.Setenv("TASKKEEPER_DATABASE_URL", "postgres://u:p@localhost:5432/tasks")
	t.Setenv("TASKKEEPER_PORT", "7000")
	t.Setenv("TASKKEEPER_LOG_DEVELOPMENT", "false")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.StoragePostgres, cfg.Storage.Type)
	assert.Equal(t, "postgres://u:p@localhost:5432/tasks", cfg.Storage.Database.URL)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.False(t, cfg.Logging.Development)
}

// TestLoad_Errors тестирует ошибки конфигурации
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "broken yaml", body: "server: [port"},
		{name: "unknown storage", body: "storage:\n  type: sqlite\n"},
		{name: "postgres without url", body: "storage:\n  type: postgres\n"},
		{name: "file without dir", body: "storage:\n  type: file\n  dir: \"\"\n"},
		{name: "negative write timeout", body: "store:\n  write_timeout: -1s\n"},
		{name: "bad bool in env", body: "", env: map[string]string{"TASKKEEPER_LOG_DEVELOPMENT": "maybe"}},
		{name: "bad redis db in env", body: "", env: map[string]string{"TASKKEEPER_REDIS_DB": "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
