package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
[database]
host = "localhost"
user = "postgres"
dbname = "schedule_service"

[salon_service]
url = "http://localhost:8081"
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.SalonService.Timeout)
	assert.Equal(t, 10, cfg.NotifyService.Timeout)
	assert.Equal(t, 5, cfg.Reminders.SweepIntervalMinutes)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "schedule-service", cfg.Metrics.ServiceName)
	assert.Equal(t, "info", cfg.Logs.Level)
}

func TestLoadFullConfig(t *testing.T) {
	content := `
[server]
http_port = 9090

[database]
host = "db"
port = 5433
user = "svc"
password = "secret"
dbname = "schedule"
sslmode = "require"

[salon_service]
url = "http://salon:8081"
timeout = 3

[notify_service]
url = "http://notify:8082"

[reminders]
enabled = true
sweep_interval_minutes = 10

[metrics]
enabled = true
service_name = "schedule-svc"
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.True(t, cfg.Reminders.Enabled)
	assert.Equal(t, 10, cfg.Reminders.SweepIntervalMinutes)
	assert.Equal(t, 3, cfg.SalonService.Timeout)
	assert.Equal(t, "host=db port=5433 user=svc password=secret dbname=schedule sslmode=require", cfg.Database.DSN())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing database host", `
[database]
user = "postgres"
dbname = "x"

[salon_service]
url = "http://localhost:8081"
`},
		{"missing salon service url", `
[database]
host = "localhost"
user = "postgres"
dbname = "x"
`},
		{"reminders enabled without notify url", minimalConfig + `
[reminders]
enabled = true
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
