// Package clock keeps in-game time and emits the minute, hour and day
// signals the climate controller listens for.
package clock

import (
	"github.com/appengine-ltd/survive-it-weather/internal/events"
)

const (
	SignalMinute = "minuteUpdate"
	SignalHour   = "hourUpdate"
	SignalDay    = "dayUpdate"
)

const (
	MinutesPerHour = 60
	HoursPerDay    = 24

	DefaultSecondsPerHour = 30.0
)

type Clock struct {
	secondsPerHour float64
	handler        *events.Handler

	day    int
	hour   int
	minute int
	// fraction of the current minute already elapsed
	progress float64
	delta    float64
}

// New starts a clock on day 1 at startHour:00. Non-positive secondsPerHour
// falls back to DefaultSecondsPerHour.
func New(secondsPerHour float64, startHour int) *Clock {
	if secondsPerHour <= 0 {
		secondsPerHour = DefaultSecondsPerHour
	}
	if startHour < 0 || startHour >= HoursPerDay {
		startHour = 0
	}
	return &Clock{
		secondsPerHour: secondsPerHour,
		handler:        events.NewHandler(),
		day:            1,
		hour:           startHour,
	}
}

// Events is the handler the clock dispatches its signals on.
func (c *Clock) Events() *events.Handler { return c.handler }

func (c *Clock) Day() int                { return c.day }
func (c *Clock) Hour() int               { return c.hour }
func (c *Clock) Minute() int             { return c.minute }
func (c *Clock) DeltaTime() float64      { return c.delta }
func (c *Clock) SecondsPerHour() float64 { return c.secondsPerHour }

// Update moves the clock forward by delta real seconds.
func (c *Clock) Update(delta float64) {
	c.delta = delta
	if delta <= 0 {
		return
	}
	c.progress += delta * MinutesPerHour / c.secondsPerHour
	for c.progress >= 1 {
		c.progress--
		c.tickMinute()
	}
}

// SkipHours jumps n whole hours, emitting every hour and day boundary on the
// way. The minute of the hour is kept.
func (c *Clock) SkipHours(n int) {
	for i := 0; i < n; i++ {
		c.tickHour()
	}
}

func (c *Clock) SkipDays(n int) {
	c.SkipHours(n * HoursPerDay)
}

// Set places the clock at an absolute time without emitting signals.
func (c *Clock) Set(day, hour, minute int) {
	if day < 1 {
		day = 1
	}
	c.day = day
	c.hour = ((hour % HoursPerDay) + HoursPerDay) % HoursPerDay
	c.minute = ((minute % MinutesPerHour) + MinutesPerHour) % MinutesPerHour
	c.progress = 0
}

func (c *Clock) tickMinute() {
	c.minute++
	if c.minute >= MinutesPerHour {
		c.minute = 0
		c.tickHour()
		return
	}
	c.handler.Dispatch(SignalMinute, c.minute)
}

func (c *Clock) tickHour() {
	c.hour++
	midnight := c.hour >= HoursPerDay
	if midnight {
		c.hour = 0
		c.day++
	}
	c.handler.Dispatch(SignalHour, c.hour)
	if midnight {
		c.handler.Dispatch(SignalDay, c.day)
	}
}
