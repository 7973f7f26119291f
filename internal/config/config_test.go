package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	fs := newFlags(t, "--env-file", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, 36, cfg.Orientation.Slices)
	assert.False(t, cfg.Orientation.Weighted)
	assert.True(t, cfg.Orientation.ExcludeZero)
	assert.Equal(t, "postgis", cfg.Network.Provider)
	assert.Equal(t, "none", cfg.Cache.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "images", cfg.Output.ImagesDir)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 5432, cfg.OSMDB.Port)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.True(t, cfg.Composite.Enabled)
	assert.Equal(t, "composite", cfg.Composite.Binary)
}

func TestLoad_EnvFileAndEnvironment(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "ORIENTATION_SLICES=72\nCACHE_DRIVER=sqlite\nOSM_DB_HOST=db.internal\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv("OSM_DB_HOST", "env.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load(newFlags(t, "--env-file", envFile))
	require.NoError(t, err)

	assert.Equal(t, 72, cfg.Orientation.Slices)
	assert.Equal(t, "sqlite", cfg.Cache.Driver)
	assert.Equal(t, "env.internal", cfg.OSMDB.Host)
	assert.Equal(t, "localhost:6380", cfg.GetRedisAddr())
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("ORIENTATION_SLICES", "72")
	t.Setenv("NETWORK_PROVIDER", "postgis")

	fs := newFlags(t,
		"--env-file", "",
		"--slices", "12",
		"--weighted",
		"--exclude-zero=false",
		"--provider", "pbf",
		"--images-dir", "out",
	)

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Orientation.Slices)
	assert.True(t, cfg.Orientation.Weighted)
	assert.False(t, cfg.Orientation.ExcludeZero)
	assert.Equal(t, "pbf", cfg.Network.Provider)
	assert.Equal(t, "out", cfg.Output.ImagesDir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"zero slices", nil, []string{"--slices", "0"}},
		{"unknown provider", map[string]string{"NETWORK_PROVIDER": "overpass"}, nil},
		{"unknown cache driver", nil, []string{"--cache", "memcached"}},
		{"bad bar color", map[string]string{"RENDER_BAR_COLOR": "navy"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			args := append([]string{"--env-file", ""}, tt.args...)

			_, err := Load(newFlags(t, args...))
			assert.Error(t, err)
		})
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{OSMDB: DatabaseConfig{
		Host: "localhost", Port: 5432, User: "osm", Password: "secret", DBName: "osm", SSLMode: "disable",
	}}

	assert.Equal(t, "host=localhost port=5432 user=osm password=secret dbname=osm sslmode=disable", cfg.GetDatabaseDSN())
}
