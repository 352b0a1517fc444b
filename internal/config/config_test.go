package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
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
user = "app"
dbname = "appointments"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "appointment-service", cfg.Metrics.ServiceName)

	assert.Equal(t, domain.DefaultStandardWindowDays, cfg.Booking.StandardWindowDays)
	assert.Equal(t, domain.DefaultAcuteWindowDays, cfg.Booking.AcuteWindowDays)
	assert.Equal(t, domain.DefaultShortNoticeHours, cfg.Booking.ShortNoticeHours)
	assert.Equal(t, 5, cfg.Booking.ReserveTimeoutSeconds)
	assert.False(t, cfg.Booking.DemoSeed)

	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	assert.Equal(t, 30, cfg.RateLimit.MaxRequests)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_ExplicitValues(t *testing.T) {
	content := `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5433
user = "app"
password = "pass"
dbname = "appointments"
sslmode = "require"

[booking]
standard_window_days = 21
acute_window_days = 7
demo_seed = true

[rate_limit]
enabled = true
window_seconds = 30
max_requests = 10

[[extras]]
code = "hot_wax"
name = "Hot wax"
price_min = 25.0
price_max = 45.0
per_board = true
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 21, cfg.Booking.StandardWindowDays)
	assert.Equal(t, 7, cfg.Booking.AcuteWindowDays)
	assert.True(t, cfg.Booking.DemoSeed)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.MaxRequests)

	assert.Equal(t,
		"host=db.internal port=5433 user=app password=pass dbname=appointments sslmode=require",
		cfg.Database.DSN())

	catalog := cfg.ExtrasCatalog()
	require.Len(t, catalog, 1)
	assert.Equal(t, domain.ExtraItem{
		Code:     "hot_wax",
		Name:     "Hot wax",
		PriceMin: 25,
		PriceMax: 45,
		PerBoard: true,
	}, catalog[0])
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing database host", content: `
[database]
user = "app"
dbname = "appointments"
`},
		{name: "missing database user", content: `
[database]
host = "localhost"
dbname = "appointments"
`},
		{name: "extra without code", content: minimalConfig + `
[[extras]]
name = "Nameless"
price_min = 10.0
price_max = 20.0
`},
		{name: "extra with inverted price range", content: minimalConfig + `
[[extras]]
code = "edge_repair"
price_min = 120.0
price_max = 40.0
`},
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
