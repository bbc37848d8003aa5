// Package climate arbitrates which weather event is in effect and drives the
// events from hour, day and frame ticks.
package climate

import (
	"errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/events"
	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

var ErrNilEvent = errors.New("climate: nil weather event")

// Daily generation parameters.
const (
	noEventChance = 0.07
	maxLeadHours  = 20
	maxDuration   = 4
	maxPriority   = 3
)

// kindBuckets maps a draw in [0, 10) to a kind: 40% storm, 30% blizzard,
// 20% solar surge, 10% acid shower.
var kindBuckets = [10]weather.Kind{
	weather.RainStorm, weather.RainStorm, weather.RainStorm, weather.RainStorm,
	weather.Blizzard, weather.Blizzard, weather.Blizzard,
	weather.SolarSurge, weather.SolarSurge,
	weather.AcidShower,
}

// TickSource is anything that emits the hour and day signals.
type TickSource interface {
	Events() *events.Handler
}

// Signal names a TickSource dispatches. They match internal/clock.
const (
	SignalHour = "hourUpdate"
	SignalDay  = "dayUpdate"
)

type Controller struct {
	env    *weather.Environment
	rand   Rand
	logger *zap.Logger

	events  []*weather.Event
	current ulid.ULID
	hasCur  bool

	overlay overlay
}

type Option func(*Controller)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithRand(r Rand) Option {
	return func(c *Controller) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithEnvironment sets the collaborators handed to every event the
// controller builds. Missing pieces are filled with no-ops.
func WithEnvironment(env *weather.Environment) Option {
	return func(c *Controller) {
		c.env = env
	}
}

func NewController(opts ...Option) *Controller {
	c := &Controller{
		rand:    globalRand{},
		logger:  zap.NewNop(),
		overlay: overlay{duration: noOverlay},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("climate")

	env := c.env.Normalised()
	if c.env == nil || c.env.Logger == nil {
		env.Logger = c.logger
	}
	c.env = env
	c.env.Signals.Subscribe(weather.SignalLightingEffect, c.onLightingEffect)
	return c
}

// Bus is the signal handler shared by the controller and its events.
func (c *Controller) Bus() *events.Handler { return c.env.Signals }

// Environment returns the collaborators events are bound to.
func (c *Controller) Environment() *weather.Environment { return c.env }

// Attach subscribes the hour and day handlers to src.
func (c *Controller) Attach(src TickSource) {
	h := src.Events()
	h.Subscribe(SignalHour, func(...any) { c.AdvanceHour() })
	h.Subscribe(SignalDay, func(...any) { c.AdvanceDay() })
}

// NewEvent builds an event bound to the controller's environment. It is not
// added.
func (c *Controller) NewEvent(kind weather.Kind, hoursUntil, duration, priority int, severity float64) (*weather.Event, error) {
	return weather.New(kind, hoursUntil, duration, priority, severity, c.env)
}

// AddEvent appends ev and, when it is already active, re-arbitrates. A
// current event whose priority is not beaten is stopped and started again.
func (c *Controller) AddEvent(ev *weather.Event) error {
	if ev == nil {
		return ErrNilEvent
	}
	c.events = append(c.events, ev)
	c.logger.Debug("weather event added", zap.Stringer("event", ev))

	if !ev.IsActive() {
		return nil
	}

	cur := c.Current()
	if cur != nil {
		cur.StopEffect()
	}
	if cur == nil || ev.Priority() > cur.Priority() {
		cur = ev
		c.setCurrent(ev)
	}
	cur.StartEffect()
	return nil
}

// Current returns the event in effect, or nil.
func (c *Controller) Current() *weather.Event {
	if !c.hasCur {
		return nil
	}
	for _, ev := range c.events {
		if ev.ID() == c.current {
			return ev
		}
	}
	return nil
}

// WeatherEvents returns the tracked events in insertion order.
func (c *Controller) WeatherEvents() []*weather.Event {
	out := make([]*weather.Event, len(c.events))
	copy(out, c.events)
	return out
}

// AdvanceHour handles the hourly tick.
func (c *Controller) AdvanceHour() {
	if cur := c.Current(); cur != nil {
		cur.StopEffect()
		c.ClearOverlay()
	}

	for _, ev := range c.events {
		ev.AdvanceHour()
	}

	kept := c.events[:0]
	for _, ev := range c.events {
		if ev.IsExpired() {
			c.logger.Debug("weather event expired", zap.Stringer("event", ev))
			continue
		}
		kept = append(kept, ev)
	}
	clear(c.events[len(kept):])
	c.events = kept

	c.clearCurrent()
	best := -1
	var next *weather.Event
	for _, ev := range c.events {
		if ev.IsActive() && ev.Priority() > best {
			best = ev.Priority()
			next = ev
		}
	}
	if next != nil {
		c.setCurrent(next)
		next.StartEffect()
	}
}

// AdvanceDay handles the daily tick: most days roll one new event.
func (c *Controller) AdvanceDay() {
	if c.rand.Float64() <= noEventChance {
		c.logger.Debug("no weather generated today")
		return
	}

	kind := kindBuckets[c.rand.IntN(len(kindBuckets))]
	hours := 1 + c.rand.IntN(maxLeadHours)
	duration := 1 + c.rand.IntN(maxDuration)
	priority := c.rand.IntN(maxPriority + 1)
	severity := c.rand.Float64() * weather.MaxGeneratedSeverity

	ev, err := c.NewEvent(kind, hours, duration, priority, severity)
	if err != nil {
		c.logger.Error("failed to generate weather event", zap.Error(err))
		return
	}
	c.logger.Info("weather generated", zap.Stringer("event", ev))
	_ = c.AddEvent(ev)
}

// AdvanceFrame drives the per-frame work: pending bus signals, each event's
// sub-events, then the lighting overlay.
func (c *Controller) AdvanceFrame(delta float64) {
	c.env.Signals.Advance(delta)
	for _, ev := range c.WeatherEvents() {
		ev.Update(delta)
	}
	c.advanceOverlay(delta)
}

func (c *Controller) setCurrent(ev *weather.Event) {
	c.current = ev.ID()
	c.hasCur = true
}

func (c *Controller) clearCurrent() {
	c.current = ulid.ULID{}
	c.hasCur = false
}
