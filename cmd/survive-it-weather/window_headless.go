//go:build !cgo

package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/config"
	"github.com/appengine-ltd/survive-it-weather/internal/session"
)

func runWindow(context.Context, *session.Session, config.Config, *zap.Logger) error {
	return errors.New("the window front-end needs a cgo build; use -ui terminal or -ui console")
}
