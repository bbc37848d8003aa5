// Package config holds the run settings shared by every front-end.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	UIWindow   = "window"
	UITerminal = "terminal"
	UIConsole  = "console"
)

const envPrefix = "WEATHER_"

type Config struct {
	SecondsPerHour float64
	StartHour      int
	Seed           int64
	FPS            int
	SaveDir        string
	SaveBackend    string
	LogLevel       string
	Dev            bool
	UI             string
	// Volume is the master sound volume in [0, 1]; 0 disables audio.
	Volume         float64
}

func Default() Config {
	return Config{
		SecondsPerHour: 30,
		StartHour:      6,
		Seed:           0,
		FPS:            30,
		SaveDir:        defaultSaveDir(),
		SaveBackend:    BackendFile,
		LogLevel:       "info",
		UI:             UITerminal,
		Volume:         0.5,
	}
}

func defaultSaveDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "survive-it-weather")
	}
	return "."
}

// LoadDotEnv loads path into the process environment. A missing file is not
// an error; variables that are already set win.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// FromEnv overlays WEATHER_* variables onto c. lookup is usually
// os.LookupEnv.
func (c Config) FromEnv(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("SECONDS_PER_HOUR"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, fmt.Errorf("%w: %sSECONDS_PER_HOUR=%q", ErrInvalidConfig, envPrefix, v)
		}
		c.SecondsPerHour = f
	}
	if v, ok := get("START_HOUR"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%w: %sSTART_HOUR=%q", ErrInvalidConfig, envPrefix, v)
		}
		c.StartHour = n
	}
	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("%w: %sSEED=%q", ErrInvalidConfig, envPrefix, v)
		}
		c.Seed = n
	}
	if v, ok := get("FPS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%w: %sFPS=%q", ErrInvalidConfig, envPrefix, v)
		}
		c.FPS = n
	}
	if v, ok := get("SAVE_DIR"); ok {
		c.SaveDir = v
	}
	if v, ok := get("SAVE_BACKEND"); ok {
		c.SaveBackend = strings.ToLower(v)
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := get("DEV"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%w: %sDEV=%q", ErrInvalidConfig, envPrefix, v)
		}
		c.Dev = b
	}
	if v, ok := get("UI"); ok {
		c.UI = strings.ToLower(v)
	}
	if v, ok := get("VOLUME"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, fmt.Errorf("%w: %sVOLUME=%q", ErrInvalidConfig, envPrefix, v)
		}
		c.Volume = f
	}
	return c, nil
}

// BindFlags registers one flag per field, defaulting to the values in c.
func (c *Config) BindFlags(flags *flag.FlagSet) {
	flags.Float64Var(&c.SecondsPerHour, "seconds-per-hour", c.SecondsPerHour, "real seconds per in-game hour")
	flags.IntVar(&c.StartHour, "start-hour", c.StartHour, "in-game hour to start at (0-23)")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "weather seed (0 picks a random seed)")
	flags.IntVar(&c.FPS, "fps", c.FPS, "frames per second")
	flags.StringVar(&c.SaveDir, "save-dir", c.SaveDir, "directory for save files")
	flags.StringVar(&c.SaveBackend, "save-backend", c.SaveBackend, "save backend: file or sqlite")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	flags.BoolVar(&c.Dev, "dev", c.Dev, "development logging")
	flags.StringVar(&c.UI, "ui", c.UI, "front-end: window, terminal or console")
	flags.Float64Var(&c.Volume, "volume", c.Volume, "sound volume from 0 (off) to 1")
}

func (c Config) Validate() error {
	if c.SecondsPerHour <= 0 {
		return fmt.Errorf("%w: seconds per hour must be positive, got %v", ErrInvalidConfig, c.SecondsPerHour)
	}
	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("%w: start hour must be between 0 and 23, got %d", ErrInvalidConfig, c.StartHour)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w: fps must be between 1 and 240, got %d", ErrInvalidConfig, c.FPS)
	}

	switch c.SaveBackend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: save backend: %s", ErrInvalidConfig, c.SaveBackend)
	}
	if strings.TrimSpace(c.SaveDir) == "" {
		return fmt.Errorf("%w: save dir is required", ErrInvalidConfig)
	}

	switch c.UI {
	case UIWindow, UITerminal, UIConsole:
	default:
		return fmt.Errorf("%w: ui: %s", ErrInvalidConfig, c.UI)
	}

	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: volume must be between 0 and 1, got %v", ErrInvalidConfig, c.Volume)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level: %s", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
