package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wattline.yaml")
	requireNoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	require.Equal(t, "postgres", cfg.Database.Type)
	require.Equal(t, 4, cfg.Ingestion.MaxPeriodsForInterpolation)
	require.Equal(t, 12, cfg.Ingestion.MaxMissedPeriodsForInterpolation)
	require.Equal(t, 6*time.Hour, cfg.Ingestion.MaxInterpolationRange)
	require.True(t, cfg.Rollup.Enabled)
	require.Equal(t, time.Minute, cfg.Rollup.Interval)
	require.Zero(t, cfg.Rollup.DefaultRetention)
	require.Equal(t, 5*time.Minute, cfg.Aggregation.TariffCacheTTL)
	require.Equal(t, time.UTC, cfg.Aggregation.Location())
}

func TestLoad_ValidConfigFile(t *testing.T) {
	cfgPath := writeConfig(t, `
server:
  port: 9090
  host: "127.0.0.1"
  mode: "debug"
database:
  type: "memory"
ingestion:
  max_periods_for_interpolation: 2
  max_interpolation_range: "3h"
rollup:
  interval: "30s"
  worker_count: 8
  default_retention: "720h"
aggregation:
  timezone: "Europe/London"
  recipe_dir: "/etc/wattline/recipes"
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	require.Equal(t, "memory", cfg.Database.Type)
	require.Equal(t, 2, cfg.Ingestion.MaxPeriodsForInterpolation)
	require.Equal(t, 12, cfg.Ingestion.MaxMissedPeriodsForInterpolation)
	require.Equal(t, 3*time.Hour, cfg.Ingestion.MaxInterpolationRange)
	require.Equal(t, 30*time.Second, cfg.Rollup.Interval)
	require.Equal(t, 8, cfg.Rollup.WorkerCount)
	require.Equal(t, 30*24*time.Hour, cfg.Rollup.DefaultRetention)
	require.Equal(t, "Europe/London", cfg.Aggregation.Location().String())
	require.Equal(t, "/etc/wattline/recipes", cfg.Aggregation.RecipeDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	cfgPath := writeConfig(t, `
rollup:
  worker_count: 8
`)
	t.Setenv("WATTLINE_ROLLUP__WORKER_COUNT", "2")
	t.Setenv("WATTLINE_DATABASE__TYPE", "memory")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Rollup.WorkerCount)
	require.Equal(t, "memory", cfg.Database.Type)
}

func TestLoad_InvalidConfigFailsStartup(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "server port",
			body:    "server:\n  port: -1\n",
			wantErr: "invalid server.port",
		},
		{
			name:    "database type",
			body:    "database:\n  type: \"sqlite\"\n",
			wantErr: "unsupported database.type",
		},
		{
			name:    "postgres without dsn",
			body:    "database:\n  dsn: \"\"\n",
			wantErr: "database.dsn is required",
		},
		{
			name:    "rollup interval",
			body:    "rollup:\n  interval: \"0s\"\n",
			wantErr: "rollup.interval must be > 0",
		},
		{
			name:    "timezone",
			body:    "aggregation:\n  timezone: \"Mars/Olympus\"\n",
			wantErr: "invalid aggregation.timezone",
		},
		{
			name:    "negative interpolation cap",
			body:    "ingestion:\n  max_missed_periods_for_interpolation: -1\n",
			wantErr: "max_missed_periods_for_interpolation",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to load config file")
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
