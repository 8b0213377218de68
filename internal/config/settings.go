package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the runtime knobs of the viewer and the balance CLI.
// Every key can be overridden with a SWEEPTIDE_ prefixed environment variable,
// e.g. SWEEPTIDE_LOG_LEVEL=debug or SWEEPTIDE_DATA_WEAPONS=/tmp/w.yaml.
type Settings struct {
	LogLevel string       `mapstructure:"log_level"`
	Seed     uint64       `mapstructure:"seed"`
	TPS      int          `mapstructure:"tps"`
	Data     DataSettings `mapstructure:"data"`
	Window   WindowConfig `mapstructure:"window"`
	Sweep    SweepConfig  `mapstructure:"sweep"`
}

type DataSettings struct {
	Config    string `mapstructure:"config"`
	Weapons   string `mapstructure:"weapons"`
	Perks     string `mapstructure:"perks"`
	Scenarios string `mapstructure:"scenarios"`
}

type WindowConfig struct {
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Title  string  `mapstructure:"title"`
	Scale  float64 `mapstructure:"scale"` // pixels per arena unit
}

type SweepConfig struct {
	Runs    int `mapstructure:"runs"`
	Workers int `mapstructure:"workers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("seed", 1)
	v.SetDefault("tps", 60)
	v.SetDefault("data.config", "assets/config.yaml")
	v.SetDefault("data.weapons", "assets/weapons.yaml")
	v.SetDefault("data.perks", "assets/perks.yaml")
	v.SetDefault("data.scenarios", "assets/scenarios.yaml")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.title", "sweeptide arena")
	v.SetDefault("window.scale", 20)
	v.SetDefault("sweep.runs", 8)
	v.SetDefault("sweep.workers", 0)
}

// LoadSettings reads the settings file. A missing file is not an error:
// defaults and environment overrides still apply.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SWEEPTIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read settings: %w", err)
			}
			slog.Warn("settings file not found, using defaults", "path", path)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if s.TPS <= 0 {
		s.TPS = 60
	}
	return &s, nil
}

// ParseLogLevel maps a settings string to a slog level, defaulting to info
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogging installs a text handler on stderr as the default logger
func SetupLogging(level string) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: ParseLogLevel(level)})
	slog.SetDefault(slog.New(handler))
}
