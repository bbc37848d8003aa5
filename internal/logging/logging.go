// Package logging builds the zap loggers used across the module.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger, or a console logger when dev is set.
// Output goes to stderr.
func New(level string, dev bool) (*zap.Logger, error) {
	return build(level, dev, "stderr")
}

// ToFile is New writing to path instead of stderr. The terminal front-end
// owns the screen and logs here.
func ToFile(level string, dev bool, path string) (*zap.Logger, error) {
	return build(level, dev, path)
}

func build(level string, dev bool, sink string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Sampling = nil
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{sink}
	cfg.ErrorOutputPaths = []string{sink}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
