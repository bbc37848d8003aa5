//go:build cgo

package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/config"
	"github.com/appengine-ltd/survive-it-weather/internal/gui"
	"github.com/appengine-ltd/survive-it-weather/internal/session"
)

func runWindow(ctx context.Context, sess *session.Session, cfg config.Config, logger *zap.Logger) error {
	return gui.New(sess, cfg.FPS, logger).Run(ctx)
}
