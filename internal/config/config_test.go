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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5433
user = "svc"
password = "pw"
dbname = "courtbook"
lock_timeout_ms = 500

[auth]
jwt_secret = "s3cret"

[booking]
open_hour = 8
close_hour = 22
courts = 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 500, cfg.Database.LockTimeoutMS)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)

	window := cfg.Booking.Window()
	assert.Equal(t, 8, window.OpenHour)
	assert.Equal(t, 22, window.CloseHour)
	assert.Equal(t, 4, window.Courts)

	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DSN(), "port=5433")
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"

[auth]
jwt_secret = "s3cret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 3000, cfg.Database.LockTimeoutMS)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, 60*24, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 9, cfg.Booking.OpenHour)
	assert.Equal(t, 21, cfg.Booking.CloseHour)
	assert.Equal(t, 6, cfg.Booking.Courts)
	assert.Equal(t, "courtbook.events", cfg.Events.Exchange)
	assert.False(t, cfg.Events.Enabled)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing database host",
			content: `
[auth]
jwt_secret = "s3cret"
`,
		},
		{
			name: "missing jwt secret",
			content: `
[database]
host = "localhost"
`,
		},
		{
			name: "inverted booking hours",
			content: `
[database]
host = "localhost"

[auth]
jwt_secret = "s3cret"

[booking]
open_hour = 22
close_hour = 9
`,
		},
		{
			name: "events enabled without url",
			content: `
[database]
host = "localhost"

[auth]
jwt_secret = "s3cret"

[events]
enabled = true
amqp_url = ""
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
