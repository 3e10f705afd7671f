package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("CPUMETER_SAMPLE_INTERVAL", "")
	t.Setenv("CPUMETER_RENDER_INTERVAL", "")
	t.Setenv("CPUMETER_THEME", "")
	t.Setenv("CPUMETER_LOG_LEVEL", "")
	return dir
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)
	cfg, err := FromFlags(nil)
	if err != nil {
		t.Fatalf("FromFlags: %v", err)
	}
	if cfg.SampleInterval != 100*time.Millisecond || cfg.RenderInterval != 100*time.Millisecond {
		t.Errorf("intervals = %s/%s, want 100ms/100ms", cfg.SampleInterval, cfg.RenderInterval)
	}
	if cfg.Theme != "orange" {
		t.Errorf("theme = %q, want orange", cfg.Theme)
	}
	if want := filepath.Join(dir, "cpumeter", "config.yaml"); cfg.SettingsPath != want {
		t.Errorf("settings path = %q, want %q", cfg.SettingsPath, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestFlagsAndEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CPUMETER_SAMPLE_INTERVAL", "0.5")
	t.Setenv("CPUMETER_RENDER_INTERVAL", "50ms")
	t.Setenv("CPUMETER_THEME", "blue")

	cfg, err := FromFlags([]string{"-theme", "green", "-no-reset", "-json-stream"})
	if err != nil {
		t.Fatalf("FromFlags: %v", err)
	}
	if cfg.SampleInterval != 500*time.Millisecond {
		t.Errorf("sample interval = %s, want 500ms", cfg.SampleInterval)
	}
	if cfg.RenderInterval != 50*time.Millisecond {
		t.Errorf("render interval = %s, want 50ms", cfg.RenderInterval)
	}
	if cfg.Theme != "green" {
		t.Errorf("theme = %q, flag should win", cfg.Theme)
	}
	if !cfg.NoReset || !cfg.JSONStream {
		t.Errorf("bool flags not applied: %+v", cfg)
	}
}

func TestThemeFromSettingsFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cpumeter", "config.yaml")
	if err := SaveSettings(path, Settings{Theme: "gray"}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	cfg, err := FromFlags(nil)
	if err != nil {
		t.Fatalf("FromFlags: %v", err)
	}
	if cfg.Theme != "gray" {
		t.Errorf("theme = %q, want gray from settings", cfg.Theme)
	}

	t.Setenv("CPUMETER_THEME", "color2")
	cfg, _ = FromFlags(nil)
	if cfg.Theme != "color2" {
		t.Errorf("theme = %q, env should beat settings", cfg.Theme)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	s, err := LoadSettings(path)
	if err != nil || s.Theme != "" {
		t.Fatalf("missing file: settings = %+v, err = %v", s, err)
	}
	if err := SaveSettings(path, Settings{Theme: "color1"}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	s, err = LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Theme != "color1" {
		t.Errorf("theme = %q, want color1", s.Theme)
	}
}

func TestLoadSettingsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("malformed settings accepted")
	}
}

func TestFromFlagsIgnoresBadSettings(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cpumeter", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("theme: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := FromFlags(nil)
	if err != nil {
		t.Fatalf("FromFlags: %v", err)
	}
	if cfg.Theme != "orange" {
		t.Errorf("theme = %q, want default orange", cfg.Theme)
	}
	if cfg.SettingsErr == nil {
		t.Error("SettingsErr not reported")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sample interval", func(c *Config) { c.SampleInterval = 0 }},
		{"negative render interval", func(c *Config) { c.RenderInterval = -time.Second }},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }},
		{"both json modes", func(c *Config) { c.JSON, c.JSONStream = true, true }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted invalid config")
			}
		})
	}
}

func TestLoggerToFile(t *testing.T) {
	cfg := Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "cpumeter.log")
	cfg.LogLevel = "debug"

	logger, closer, err := cfg.Logger(true)
	if err != nil {
		t.Fatalf("Logger: %v", err)
	}
	logger.Debug("hello", "k", 1)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}
