package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestFromEnvOverlays(t *testing.T) {
	cfg, err := Default().FromEnv(mapLookup(map[string]string{
		"WEATHER_SECONDS_PER_HOUR": "12.5",
		"WEATHER_START_HOUR":       "22",
		"WEATHER_SEED":             "-7",
		"WEATHER_SAVE_BACKEND":     "SQLite",
		"WEATHER_DEV":              "true",
		"WEATHER_UI":               "console",
		"WEATHER_LOG_LEVEL":        " ",
		"WEATHER_VOLUME":           "0",
	}))
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.SecondsPerHour != 12.5 || cfg.StartHour != 22 || cfg.Seed != -7 {
		t.Fatalf("unexpected numbers: %+v", cfg)
	}
	if cfg.SaveBackend != BackendSQLite || !cfg.Dev || cfg.UI != UIConsole {
		t.Fatalf("unexpected strings: %+v", cfg)
	}
	if cfg.Volume != 0 {
		t.Fatalf("expected audio off, got volume %v", cfg.Volume)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("blank variables should be ignored, got log level %q", cfg.LogLevel)
	}
}

func TestFromEnvRejectsBadNumbers(t *testing.T) {
	_, err := Default().FromEnv(mapLookup(map[string]string{"WEATHER_FPS": "fast"}))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"seconds per hour", func(c *Config) { c.SecondsPerHour = 0 }},
		{"start hour", func(c *Config) { c.StartHour = 24 }},
		{"fps", func(c *Config) { c.FPS = 0 }},
		{"backend", func(c *Config) { c.SaveBackend = "redis" }},
		{"save dir", func(c *Config) { c.SaveDir = " " }},
		{"ui", func(c *Config) { c.UI = "web" }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"volume", func(c *Config) { c.Volume = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestBindFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse([]string{"-seed", "42", "-ui", "window", "-seconds-per-hour", "5"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Seed != 42 || cfg.UI != UIWindow || cfg.SecondsPerHour != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.FPS != Default().FPS {
		t.Fatalf("unset flags should keep defaults")
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("WEATHER_TEST_DOTENV=storm\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("WEATHER_TEST_DOTENV") })
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("WEATHER_TEST_DOTENV"); got != "storm" {
		t.Fatalf("expected storm, got %q", got)
	}
}
