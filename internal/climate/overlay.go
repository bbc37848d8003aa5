package climate

import (
	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

const noOverlay = -1.0

type overlay struct {
	progress float64
	duration float64
	gradient weather.Gradient
}

// SetOverlay starts a transient colour overlay that runs for duration
// seconds, sampling g with t in [0, 1].
func (c *Controller) SetOverlay(duration float64, g weather.Gradient) {
	c.overlay = overlay{duration: duration, gradient: g}
}

// ClearOverlay drops any running overlay. The last emitted colour stays
// until the next frame.
func (c *Controller) ClearOverlay() {
	c.overlay = overlay{duration: noOverlay}
}

// Overlay reports the overlay's progress and length. active is false once
// the overlay has run out or was cleared.
func (c *Controller) Overlay() (progress, duration float64, active bool) {
	o := c.overlay
	if o.duration <= 0 || o.gradient == nil {
		return o.progress, o.duration, false
	}
	t := o.progress / o.duration
	return o.progress, o.duration, t >= 0 && t <= 1
}

func (c *Controller) onLightingEffect(args ...any) {
	if len(args) < 2 {
		return
	}
	duration, ok := args[0].(float64)
	if !ok {
		return
	}
	var g weather.Gradient
	switch fn := args[1].(type) {
	case weather.Gradient:
		g = fn
	case func(float64) weather.Colour:
		g = fn
	default:
		c.logger.Warn("lighting effect without gradient", zap.Any("payload", args[1]))
		return
	}
	c.SetOverlay(duration, g)
}

func (c *Controller) advanceOverlay(delta float64) {
	o := &c.overlay
	o.progress += delta
	if o.gradient == nil || o.duration <= 0 {
		c.env.Lighting.SetColourOffset(weather.Clear)
		return
	}
	t := o.progress / o.duration
	if t < 0 || t > 1 {
		c.env.Lighting.SetColourOffset(weather.Clear)
		return
	}
	c.env.Lighting.SetColourOffset(o.gradient(t))
}
