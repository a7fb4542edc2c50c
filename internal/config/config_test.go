package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8085

[database]
host = "db"
user = "calendar"
password = "secret"
dbname = "smc_booking"

[logs]
level = "debug"

[metrics]
enabled = true

[rules]
preset_file = "rules.yaml"
watch = true
`

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse(sampleConfig)
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "calendar-service", cfg.Metrics.ServiceName)
	assert.Equal(t, 10, cfg.ICS.Timeout)
	assert.Equal(t, int64(5<<20), cfg.ICS.MaxBodyBytes)
	assert.False(t, cfg.ICS.AllowPrivateNetworks)
	assert.Equal(t, "http://localhost:8081", cfg.SellerService.URL)
	assert.Equal(t, 5, cfg.SellerService.Timeout)
	assert.True(t, cfg.Rules.Watch)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg, err := Parse(sampleConfig)
	require.NoError(t, err)

	assert.Equal(t, "host=db port=5432 user=calendar password=secret dbname=smc_booking sslmode=disable", cfg.Database.DSN())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"broken toml", "[server\nhttp_port = 1"},
		{"missing dbname", "[server]\nhttp_port = 8080"},
		{"bad port", "[server]\nhttp_port = 70000\n[database]\ndbname = \"x\""},
		{"bad level", "[database]\ndbname = \"x\"\n[logs]\nlevel = \"verbose\""},
		{"idle over open", "[database]\ndbname = \"x\"\nmax_open_conns = 2\nmax_idle_conns = 3"},
		{"watch without file", "[database]\ndbname = \"x\"\n[rules]\nwatch = true"},
		{"bad metrics path", "[database]\ndbname = \"x\"\n[metrics]\nenabled = true\npath = \"metrics\""},
		{"bad seller url", "[database]\ndbname = \"x\"\n[seller_service]\nurl = \"seller:8081\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Database.Host)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
