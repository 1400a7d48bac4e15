// Package config provides configuration types and defaults for gotext.
package config

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/ionut-t/gotext/core"
	"github.com/ionut-t/gotext/internal/log"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. GOTEXT_QUIT_TIMES.
const EnvPrefix = "GOTEXT"

// Config holds all configuration options for gotext.
type Config struct {
	SyntaxTheme string      `mapstructure:"syntax_theme"` // chroma style name
	QuitTimes   int         `mapstructure:"quit_times"`   // Ctrl-Q presses needed to discard changes
	ShowWelcome bool        `mapstructure:"show_welcome"`
	WatchFile   bool        `mapstructure:"watch_file"` // Report external modifications of the open file
	Debug       bool        `mapstructure:"debug"`
	LogPath     string      `mapstructure:"log_path"`
	LogLevel    string      `mapstructure:"log_level"` // debug, info, warn or error
	Theme       ThemeConfig `mapstructure:"theme"`
}

// ThemeConfig holds colour overrides. Colours are anything lipgloss accepts:
// ANSI numbers like "220" or hex like "#FFD700".
type ThemeConfig struct {
	Match         string            `mapstructure:"match"`
	SelectedMatch string            `mapstructure:"selected_match"`
	Message       string            `mapstructure:"message"`
	Tilde         string            `mapstructure:"tilde"`
	Syntax        map[string]string `mapstructure:"syntax"` // annotation name -> colour, e.g. keyword: "#FF79C6"
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		SyntaxTheme: "monokai",
		QuitTimes:   3,
		ShowWelcome: true,
		WatchFile:   true,
		LogPath:     "debug.log",
		LogLevel:    "debug",
	}
}

// DefaultConfigPath returns ~/.config/gotext/config.yaml, or "" when the
// home directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gotext", "config.yaml")
}

// Load reads the configuration. An explicit path must exist; without one
// the default path is used if present and defaults otherwise. Environment
// variables prefixed with GOTEXT_ override file values.
func Load(fs afero.Fs, path string) (Config, error) {
	v := newViper(fs)

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			switch {
			case explicit:
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			case errors.As(err, &notFound), errors.Is(err, iofs.ErrNotExist):
				log.Debug(log.CatConfig, "no config file, using defaults", "path", path)
			default:
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else {
			log.Info(log.CatConfig, "loaded config", "path", v.ConfigFileUsed())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("yaml")

	defaults := Defaults()
	v.SetDefault("syntax_theme", defaults.SyntaxTheme)
	v.SetDefault("quit_times", defaults.QuitTimes)
	v.SetDefault("show_welcome", defaults.ShowWelcome)
	v.SetDefault("watch_file", defaults.WatchFile)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("log_path", defaults.LogPath)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("theme.match", "")
	v.SetDefault("theme.selected_match", "")
	v.SetDefault("theme.message", "")
	v.SetDefault("theme.tilde", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.QuitTimes < 1 {
		return fmt.Errorf("quit_times must be at least 1, got %d", c.QuitTimes)
	}
	if c.Debug && c.LogPath == "" {
		return errors.New("log_path is required when debug is enabled")
	}
	for name := range c.Theme.Syntax {
		if t, ok := core.ParseAnnotationType(name); !ok || t == core.AnnotationNone {
			return fmt.Errorf("theme.syntax: unknown annotation %q", name)
		}
	}
	return nil
}
