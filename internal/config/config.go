package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/cpumeter/internal/theme"
)

// Config carries runtime options for cpumeter.
type Config struct {
	SampleInterval time.Duration
	RenderInterval time.Duration
	Theme          string
	JSON           bool
	JSONStream     bool
	NoReset        bool
	SettingsPath   string
	LogFile        string
	LogLevel       string

	// SettingsErr is set when the settings file could not be read. The
	// defaults are used in its place.
	SettingsErr error
}

// Settings is what cpumeter remembers between runs.
type Settings struct {
	Theme string `yaml:"theme"`
}

func Default() Config {
	return Config{
		SampleInterval: 100 * time.Millisecond,
		RenderInterval: 100 * time.Millisecond,
		Theme:          string(theme.Default),
		SettingsPath:   Path(),
		LogLevel:       "info",
	}
}

// Path returns ~/.config/cpumeter/config.yaml (or under XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "cpumeter", "config.yaml")
}

// FromFlags parses flags and environment overrides. The theme comes from the
// flag, then CPUMETER_THEME, then the settings file.
func FromFlags(args []string) (Config, error) {
	cfg := Default()
	var themeFlag string
	fs := flag.NewFlagSet("cpumeter", flag.ContinueOnError)
	fs.DurationVar(&cfg.SampleInterval, "sample-interval", cfg.SampleInterval, "cpu sampling period")
	fs.DurationVar(&cfg.RenderInterval, "render-interval", cfg.RenderInterval, "animation frame period")
	fs.StringVar(&themeFlag, "theme", "", "meter theme: "+themeList())
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "output one-shot JSON and exit")
	fs.BoolVar(&cfg.JSONStream, "json-stream", cfg.JSONStream, "stream NDJSON meter frames until interrupted")
	fs.BoolVar(&cfg.NoReset, "no-reset", cfg.NoReset, "skip the start-up animation")
	fs.StringVar(&cfg.SettingsPath, "config", cfg.SettingsPath, "settings file")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if v := os.Getenv("CPUMETER_SAMPLE_INTERVAL"); v != "" {
		if d, ok := parseInterval(v); ok {
			cfg.SampleInterval = d
		}
	}
	if v := os.Getenv("CPUMETER_RENDER_INTERVAL"); v != "" {
		if d, ok := parseInterval(v); ok {
			cfg.RenderInterval = d
		}
	}
	if v := os.Getenv("CPUMETER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	switch {
	case themeFlag != "":
		cfg.Theme = themeFlag
	case os.Getenv("CPUMETER_THEME") != "":
		cfg.Theme = os.Getenv("CPUMETER_THEME")
	default:
		s, err := LoadSettings(cfg.SettingsPath)
		if err != nil {
			cfg.SettingsErr = err
		} else if s.Theme != "" {
			cfg.Theme = s.Theme
		}
	}
	return cfg, nil
}

// parseInterval accepts a duration ("250ms") or bare seconds ("0.5").
func parseInterval(v string) (time.Duration, bool) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, true
	}
	if d, err := time.ParseDuration(v + "s"); err == nil {
		return d, true
	}
	return 0, false
}

func themeList() string {
	names := theme.Names()
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, "|")
}

// Validate checks the configuration for logical consistency.
func (c Config) Validate() error {
	if c.SampleInterval <= 0 {
		return fmt.Errorf("sample interval must be positive, got %s", c.SampleInterval)
	}
	if c.RenderInterval <= 0 {
		return fmt.Errorf("render interval must be positive, got %s", c.RenderInterval)
	}
	if _, err := theme.Lookup(c.Theme); err != nil {
		return err
	}
	if c.JSON && c.JSONStream {
		return errors.New("-json and -json-stream are mutually exclusive")
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// Logger builds the process logger. Without a log file, logs go to stderr,
// or nowhere when the terminal belongs to the TUI. The returned closer is never nil.
func (c Config) Logger(tui bool) (*slog.Logger, io.Closer, error) {
	lvl, err := c.level()
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	switch {
	case c.LogFile != "":
		if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	case tui:
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), closer, nil
}

// LoadSettings reads the settings file. A missing file yields empty settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings writes s to path, creating parent directories.
func SaveSettings(path string, s Settings) error {
	if path == "" {
		return errors.New("no settings path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
