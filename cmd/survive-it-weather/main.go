package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/audio"
	"github.com/appengine-ltd/survive-it-weather/internal/config"
	"github.com/appengine-ltd/survive-it-weather/internal/logging"
	"github.com/appengine-ltd/survive-it-weather/internal/session"
	"github.com/appengine-ltd/survive-it-weather/internal/tui"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Default().FromEnv(os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if showVersion {
		fmt.Printf("Survive It: Weather %s (%s) %s\n", version, commit, date)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := []session.Option{session.WithLogger(logger)}
	if cfg.Volume > 0 && cfg.UI != config.UIConsole {
		synth := audio.NewSynth(cfg.Volume)
		closeAudio, err := audio.Open(synth)
		if err != nil {
			logger.Warn("audio disabled", zap.Error(err))
		} else {
			defer closeAudio()
			opts = append(opts, session.WithSound(synth))
		}
	}

	sess, err := session.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Error("close session", zap.Error(err))
		}
	}()

	switch cfg.UI {
	case config.UIWindow:
		return runWindow(ctx, sess, cfg, logger)
	case config.UIConsole:
		return newConsole(sess, os.Stdin, os.Stdout).run(ctx)
	default:
		return tui.New(sess, cfg.FPS, logger).Run(ctx)
	}
}

// newLogger sends logs to a file in the save directory when a front-end owns
// the screen, and to stderr for the console.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.UI == config.UIConsole {
		return logging.New(cfg.LogLevel, cfg.Dev)
	}
	if err := os.MkdirAll(cfg.SaveDir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return logging.ToFile(cfg.LogLevel, cfg.Dev, filepath.Join(cfg.SaveDir, "weather.log"))
}
