package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"
	configDir  = ".autounclaim"
	envPrefix  = "AUTOUNCLAIM"

	keyInactiveValue   = "inactive-time.value"
	keyInactiveUnit    = "inactive-time.unit"
	keyAutoRunEnabled  = "auto-run.enabled"
	keyAutoRunInterval = "auto-run.interval-minutes"
	keyDedupeClaims    = "prune.dedupe-claims"
	keyStoreDriver     = "store.driver"
	keyStorePath       = "store.path"
	keyLogLevel        = "log.level"
	keyLogFormat       = "log.format"

	defaultIntervalMinutes = 60

	DriverTOML   = "toml"
	DriverSQLite = "sqlite"
)

type Config struct {
	InactivePeriod InactivePeriod
	AutoRun        AutoRunConfig
	Prune          PruneConfig
	Store          StoreConfig
	Log            LogConfig
	// File is the config file that was read, empty when defaults were used.
	File string
}

type AutoRunConfig struct {
	Enabled  bool
	Interval time.Duration
}

type PruneConfig struct {
	DedupeClaims bool
}

type StoreConfig struct {
	Driver string
	Path   string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the configuration from path, or from the default location when
// path is empty, with AUTOUNCLAIM_* environment overrides. Out-of-range values
// are replaced by defaults and reported as warnings.
func Load(v *viper.Viper, path string) (Config, []string, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, nil, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	v.SetConfigType(configType)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(baseDir)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyInactiveValue, DefaultInactivePeriod().Value)
	v.SetDefault(keyInactiveUnit, string(DefaultInactivePeriod().Unit))
	v.SetDefault(keyAutoRunEnabled, false)
	v.SetDefault(keyAutoRunInterval, defaultIntervalMinutes)
	v.SetDefault(keyDedupeClaims, false)
	v.SetDefault(keyStoreDriver, DriverTOML)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "console")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var warnings []string
	cfg := Config{
		Prune: PruneConfig{DedupeClaims: v.GetBool(keyDedupeClaims)},
		Log: LogConfig{
			Level:  v.GetString(keyLogLevel),
			Format: v.GetString(keyLogFormat),
		},
		File: v.ConfigFileUsed(),
	}

	cfg.InactivePeriod, warnings = inactivePeriod(v, warnings)
	cfg.AutoRun, warnings = autoRun(v, warnings)

	cfg.Store, err = store(v, baseDir)
	if err != nil {
		return Config{}, nil, err
	}

	return cfg, warnings, nil
}

func inactivePeriod(v *viper.Viper, warnings []string) (InactivePeriod, []string) {
	value := v.GetInt(keyInactiveValue)
	if value < 1 {
		def := DefaultInactivePeriod()
		warnings = append(warnings, fmt.Sprintf("%s must be >= 1. Using default: %s.", keyInactiveValue, def.Display()))
		return def, warnings
	}

	rawUnit := v.GetString(keyInactiveUnit)
	unit, ok := ParseTimeUnit(rawUnit)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("Unknown time unit %q. Using days.", rawUnit))
		unit = UnitDays
	}

	if limit := maxPeriodValue(unit); int64(value) > limit {
		def := DefaultInactivePeriod()
		warnings = append(warnings, fmt.Sprintf("%s must be <= %d for unit %s. Using default: %s.", keyInactiveValue, limit, unit, def.Display()))
		return def, warnings
	}

	return InactivePeriod{Value: value, Unit: unit}, warnings
}

// maxPeriodValue is the largest value whose duration in unit fits a
// time.Duration.
func maxPeriodValue(unit TimeUnit) int64 {
	return math.MaxInt64 / int64(unit.Duration())
}

func autoRun(v *viper.Viper, warnings []string) (AutoRunConfig, []string) {
	minutes := v.GetInt(keyAutoRunInterval)
	if minutes < 1 || int64(minutes) > maxPeriodValue(UnitMinutes) {
		warnings = append(warnings, fmt.Sprintf("%s must be between 1 and %d. Using default: %d minutes.", keyAutoRunInterval, maxPeriodValue(UnitMinutes), defaultIntervalMinutes))
		minutes = defaultIntervalMinutes
	}

	return AutoRunConfig{
		Enabled:  v.GetBool(keyAutoRunEnabled),
		Interval: time.Duration(minutes) * time.Minute,
	}, warnings
}

func store(v *viper.Viper, baseDir string) (StoreConfig, error) {
	driver := strings.ToLower(strings.TrimSpace(v.GetString(keyStoreDriver)))

	var defaultFile string
	switch driver {
	case DriverTOML:
		defaultFile = "claims.toml"
	case DriverSQLite:
		defaultFile = "claims.db"
	default:
		return StoreConfig{}, fmt.Errorf("unsupported store driver %q", driver)
	}

	path := v.GetString(keyStorePath)
	if path == "" {
		path = filepath.Join(baseDir, defaultFile)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return StoreConfig{}, fmt.Errorf("resolve store path: %w", err)
	}

	return StoreConfig{Driver: driver, Path: filepath.Clean(absPath)}, nil
}
