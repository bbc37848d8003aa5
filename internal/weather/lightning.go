package weather

import (
	"math"

	"go.uber.org/zap"
)

// scheduleNextStrike queues the next lightning strike unless it would land
// after the storm's active window has closed.
func (e *Event) scheduleNextStrike() {
	e.local.Cancel(e.strike)
	e.strike = nil

	window := e.strikeWindow()
	delay := e.nextStrikeDelay()
	if window < delay {
		return
	}
	e.strike = e.local.ScheduleDelayed(delay, SignalLightningStrike)
}

// strikeWindow is the real time left until the end of the active window:
// the rest of the current hour plus one full hour per remaining duration,
// since the hour at duration 0 is still active.
func (e *Event) strikeWindow() float64 {
	minute := e.env.Clock.Minute()
	return (float64(59-minute)/60.0 + float64(e.duration)) * e.env.SecondsPerHour
}

// nextStrikeDelay shrinks towards 2..6 seconds as severity reaches its max.
func (e *Event) nextStrikeDelay() float64 {
	calm := (MaxSeverity - e.severity) / MaxSeverity
	maxTime := 6.0 + 8.0*calm
	minTime := 2.0 + 3.0*calm
	return e.uniform(minTime, maxTime)
}

func (e *Event) nextStrikeDuration() float64 {
	maxTime := 1.8 + 2.0*e.severity/MaxSeverity
	minTime := 0.6 + 0.6*e.severity/MaxSeverity
	return e.uniform(minTime, maxTime)
}

func (e *Event) uniform(lo, hi float64) float64 {
	return lo + e.env.Rand.Float64()*(hi-lo)
}

func (e *Event) triggerStrike(...any) {
	e.strike = nil
	if _, err := e.env.Sound.Play(SoundLightningStrike, false); err != nil {
		e.logger.Error("failed to play lightning strike sound", zap.Error(err))
	}
	e.env.Signals.Dispatch(SignalStartPanic)
	e.env.Signals.Dispatch(SignalLightingEffect, e.nextStrikeDuration(), Gradient(e.LightningColour))
	e.scheduleNextStrike()
}

// LightningColour is the flash gradient of this storm: a sine pulse whose
// frequency grows with severity, squared so the tail fades quickly.
func (e *Event) LightningColour(t float64) Colour {
	return LightningColour(e.severity, t)
}

func LightningColour(severity, t float64) Colour {
	brightness := 0.8*math.Sin(math.Pi*t*(severity/MaxSeverity+1.0)) + 0.2
	brightness *= brightness * 0.8
	b := float32(brightness)
	return Colour{R: b, G: b, B: b, A: 0}
}
