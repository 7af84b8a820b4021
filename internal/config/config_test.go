package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/tally/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, config.DriverRedis, cfg.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "tally", cfg.Redis.Prefix)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 10*time.Second, cfg.Telegram.PollerTimeout)
	assert.Equal(t, time.Local, cfg.Location)
	assert.Equal(t, "MAD", cfg.Currency)
	assert.Equal(t, 8080, cfg.Monitoring)
}

func TestLoad_FromFile(t *testing.T) {
	configContent := `
---
env: "local"
storage:
  driver: postgres
telegram:
  token: test-token
  timeout: 30s
  owner_id: 42
postgres:
  host: "localhost"
  user: "pgUser"
  password: "pgPassword"
  db_name: "pgDatabase"
timezone: "Africa/Casablanca"
currency: "EUR"
`
	defer filet.CleanUp(t)
	yamlPath := filepath.Join(filet.TmpDir(t, ""), "conf.yaml")
	filet.File(t, yamlPath, configContent)

	t.Setenv("CONFIG_PATH", yamlPath)
	t.Setenv("TALLY_POSTGRES_PASSWORD", "fromEnv")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, config.DriverPostgres, cfg.Driver)
	assert.Equal(t, "test-token", cfg.Telegram.Token)
	assert.Equal(t, 30*time.Second, cfg.Telegram.PollerTimeout)
	assert.Equal(t, int64(42), cfg.Telegram.OwnerID)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "fromEnv", cfg.Database.Password, "environment overrides the file")
	assert.Equal(t, "pgDatabase", cfg.Database.Name)
	assert.Equal(t, "Africa/Casablanca", cfg.Location.String())
	assert.Equal(t, "EUR", cfg.Currency)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("TALLY_REDIS_ADDR", "redis:6379")
	t.Setenv("TALLY_REDIS_DB", "3")
	t.Setenv("TALLY_TELEGRAM_OWNER_ID", "777")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, int64(777), cfg.Telegram.OwnerID)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
		message string
	}{
		{
			name:    "file does not exist",
			env:     map[string]string{"CONFIG_PATH": "./invalid/path.yaml"},
			message: "config file does not exist: ./invalid/path.yaml",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"TALLY_STORAGE_DRIVER": "sqlite"},
			wantErr: config.ErrUnknownDriver,
		},
		{
			name:    "bad timeout",
			env:     map[string]string{"TALLY_TELEGRAM_TIMEOUT": "error_value"},
			wantErr: config.ErrInvalidValue,
		},
		{
			name:    "bad timezone",
			env:     map[string]string{"TALLY_TIMEZONE": "Mars/Olympus"},
			wantErr: config.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()

			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.message != "" {
				require.ErrorContains(t, err, tt.message)
			}
		})
	}
}

func TestMustLoad_ReadError(t *testing.T) {
	defer filet.CleanUp(t)
	yamlPath := filepath.Join(filet.TmpDir(t, ""), "conf.yaml")
	filet.File(t, yamlPath, "::::bad_yaml")
	t.Setenv("CONFIG_PATH", yamlPath)

	assert.Panics(t, func() {
		config.MustLoad()
	})
}
