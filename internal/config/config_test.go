package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, warnings, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.Equal(t, InactivePeriod{Value: 90, Unit: UnitDays}, cfg.InactivePeriod)
	assert.Equal(t, 90*24*time.Hour, cfg.InactivePeriod.Duration())
	assert.False(t, cfg.AutoRun.Enabled)
	assert.Equal(t, time.Hour, cfg.AutoRun.Interval)
	assert.False(t, cfg.Prune.DedupeClaims)
	assert.Equal(t, DriverTOML, cfg.Store.Driver)
	assert.Equal(t, filepath.Join(home, ".autounclaim", "claims.toml"), cfg.Store.Path)
	assert.Empty(t, cfg.File)
}

func TestLoadReadsConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	storePath := filepath.Join(t.TempDir(), "regions.db")

	path := writeConfig(t, `
inactive-time:
  value: 12
  unit: часов
auto-run:
  enabled: true
  interval-minutes: 15
prune:
  dedupe-claims: true
store:
  driver: sqlite
  path: `+storePath+`
log:
  level: debug
  format: json
`)

	cfg, warnings, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.Equal(t, InactivePeriod{Value: 12, Unit: UnitHours}, cfg.InactivePeriod)
	assert.Equal(t, 12*time.Hour, cfg.InactivePeriod.Duration())
	assert.True(t, cfg.AutoRun.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.AutoRun.Interval)
	assert.True(t, cfg.Prune.DedupeClaims)
	assert.Equal(t, StoreConfig{Driver: DriverSQLite, Path: storePath}, cfg.Store)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, path, cfg.File)
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
inactive-time:
  value: 0
  unit: hours
auto-run:
  interval-minutes: -5
`)

	cfg, warnings, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, DefaultInactivePeriod(), cfg.InactivePeriod)
	assert.Equal(t, time.Hour, cfg.AutoRun.Interval)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "inactive-time.value must be >= 1")
	assert.Contains(t, warnings[1], "auto-run.interval-minutes must be between 1 and")
}

func TestLoadRejectsPeriodsBeyondDurationRange(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		want        InactivePeriod
		wantWarning string
	}{
		{
			name:        "days overflow",
			body:        "inactive-time:\n  value: 300000\n  unit: days\n",
			want:        DefaultInactivePeriod(),
			wantWarning: "inactive-time.value must be <= 106751 for unit days",
		},
		{
			name: "largest day count",
			body: "inactive-time:\n  value: 106751\n  unit: days\n",
			want: InactivePeriod{Value: 106751, Unit: UnitDays},
		},
		{
			name:        "hours overflow",
			body:        "inactive-time:\n  value: 2562048\n  unit: hours\n",
			want:        DefaultInactivePeriod(),
			wantWarning: "inactive-time.value must be <= 2562047 for unit hours",
		},
		{
			name:        "interval overflow",
			body:        "auto-run:\n  interval-minutes: 153722868\n",
			want:        DefaultInactivePeriod(),
			wantWarning: "auto-run.interval-minutes must be between 1 and 153722867",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())

			cfg, warnings, err := Load(viper.New(), writeConfig(t, tt.body))
			require.NoError(t, err)

			assert.Equal(t, tt.want, cfg.InactivePeriod)
			assert.Positive(t, cfg.InactivePeriod.Duration())
			assert.Positive(t, cfg.AutoRun.Interval)
			if tt.wantWarning == "" {
				assert.Empty(t, warnings)
				return
			}
			require.Len(t, warnings, 1)
			assert.Contains(t, warnings[0], tt.wantWarning)
		})
	}
}

func TestLoadUnknownUnitUsesDays(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, "inactive-time:\n  value: 3\n  unit: fortnights\n")

	cfg, warnings, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, InactivePeriod{Value: 3, Unit: UnitDays}, cfg.InactivePeriod)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `Unknown time unit "fortnights"`)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AUTOUNCLAIM_INACTIVE_TIME_VALUE", "30")
	t.Setenv("AUTOUNCLAIM_AUTO_RUN_ENABLED", "true")

	cfg, _, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.InactivePeriod.Value)
	assert.True(t, cfg.AutoRun.Enabled)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, "store:\n  driver: mongo\n")

	_, _, err := Load(viper.New(), path)
	require.ErrorContains(t, err, `unsupported store driver "mongo"`)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, _, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read config file")
}

func TestInactivePeriodDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "90 days", InactivePeriod{Value: 90, Unit: UnitDays}.Display())
	assert.Equal(t, "1 day", InactivePeriod{Value: 1, Unit: UnitDays}.Display())
	assert.Equal(t, "45 minutes", InactivePeriod{Value: 45, Unit: UnitMinutes}.Display())
	assert.Equal(t, "1 hour", InactivePeriod{Value: 1, Unit: UnitHours}.Display())
}

func TestParseTimeUnitAliases(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]TimeUnit{
		"min":   UnitMinutes,
		"Hours": UnitHours,
		" d ":   UnitDays,
		"дня":   UnitDays,
		"ч":     UnitHours,
	} {
		got, ok := ParseTimeUnit(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := ParseTimeUnit("weeks")
	assert.False(t, ok)
}
