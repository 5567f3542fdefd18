// Package config loads treesel settings from an optional YAML file and
// TREESEL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// UI modes accepted by ui.mode.
const (
	ModeAuto   = "auto"
	ModeTUI    = "tui"
	ModeSimple = "simple"
)

// ErrInvalid indicates a setting with an unsupported value.
var ErrInvalid = errors.New("invalid configuration")

// Config holds application configuration.
type Config struct {
	Selection SelectionConfig `mapstructure:"selection"`
	UI        UIConfig        `mapstructure:"ui"`
	Load      LoadConfig      `mapstructure:"load"`
	Log       LogConfig       `mapstructure:"log"`
}

// SelectionConfig holds selection model defaults.
type SelectionConfig struct {
	Single bool `mapstructure:"single"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Mode      string `mapstructure:"mode"`
	ShowItems bool   `mapstructure:"show_items"`
}

// LoadConfig holds document loading settings.
type LoadConfig struct {
	Workers int `mapstructure:"workers"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// TREESEL_. The file is path when set, else $TREESEL_CONFIG, else
// ~/.config/treesel/config.yaml; only the last may be missing.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("selection.single", false)
	v.SetDefault("ui.mode", ModeAuto)
	v.SetDefault("ui.show_items", true)
	v.SetDefault("load.workers", 4)
	v.SetDefault("log.level", "warn")

	v.SetConfigType("yaml")

	if path == "" {
		path = os.Getenv("TREESEL_CONFIG")
	}

	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "treesel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TREESEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.UI.Mode {
	case ModeAuto, ModeTUI, ModeSimple:
	default:
		return fmt.Errorf("ui.mode %q: %w", c.UI.Mode, ErrInvalid)
	}

	if c.Load.Workers < 1 {
		return fmt.Errorf("load.workers %d: %w", c.Load.Workers, ErrInvalid)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses log.level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", c.Log.Level, ErrInvalid)
	}

	return level, nil
}
