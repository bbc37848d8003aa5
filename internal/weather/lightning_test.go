package weather_test

import (
	"math"
	"testing"

	"github.com/appengine-ltd/survive-it-weather/internal/weather"
	"github.com/appengine-ltd/survive-it-weather/internal/weather/weathertest"
)

func TestLightningStrikeFiresAndReschedules(t *testing.T) {
	rec := &weathertest.Recorder{}
	env := weathertest.Environment(rec)
	panics := 0
	var flashes []float64
	env.Signals.Subscribe(weather.SignalStartPanic, func(...any) { panics++ })
	env.Signals.Subscribe(weather.SignalLightingEffect, func(args ...any) {
		flashes = append(flashes, args[0].(float64))
		if _, ok := args[1].(weather.Gradient); !ok {
			t.Fatalf("expected a gradient, got %T", args[1])
		}
	})

	e := mustEvent(t, weather.RainStorm, 0, 2, 0, weather.MaxSeverity, env)
	e.StartEffect()

	// FixedRand(0.5) at max severity: delay is halfway between 2 and 6.
	e.Update(3.9)
	if panics != 0 {
		t.Fatalf("strike fired early")
	}
	e.Update(0.2)
	if panics != 1 || len(flashes) != 1 {
		t.Fatalf("expected one strike, got panics=%d flashes=%d", panics, len(flashes))
	}
	if math.Abs(flashes[0]-2.5) > 1e-9 {
		t.Fatalf("flash duration = %v, want 2.5", flashes[0])
	}
	if rec.Played[len(rec.Played)-1] != weather.SoundLightningStrike {
		t.Fatalf("expected strike sound, got %v", rec.Played)
	}
	if e.PendingSubEvents() != 1 {
		t.Fatalf("expected the next strike to be scheduled, got %d", e.PendingSubEvents())
	}
}

func TestLightningNotScheduledPastWindow(t *testing.T) {
	rec := &weathertest.Recorder{}
	env := weathertest.Environment(rec)
	env.Clock = weathertest.Minute(59)

	// Final active hour at :59 leaves a zero second window.
	e := mustEvent(t, weather.RainStorm, 0, 1, 0, 1, env)
	e.AdvanceHour()
	if !e.IsActive() || e.RemainingDuration() != 0 {
		t.Fatalf("expected the final active hour, got %s", e)
	}
	e.StartEffect()
	if e.PendingSubEvents() != 0 {
		t.Fatalf("expected no strike, got %d pending", e.PendingSubEvents())
	}
}

func TestLightningStrikesDuringFinalActiveHour(t *testing.T) {
	rec := &weathertest.Recorder{}
	env := weathertest.Environment(rec)
	strikes := 0
	env.Signals.Subscribe(weather.SignalStartPanic, func(...any) { strikes++ })

	e := mustEvent(t, weather.RainStorm, 0, 1, 0, weather.MaxSeverity, env)
	e.AdvanceHour()
	e.StartEffect()
	if e.PendingSubEvents() != 1 {
		t.Fatalf("expected a strike in the final hour, got %d pending", e.PendingSubEvents())
	}
	e.Update(4)
	if strikes != 1 {
		t.Fatalf("expected one strike, got %d", strikes)
	}
}

func TestLightningWindowCountsRemainingHours(t *testing.T) {
	rec := &weathertest.Recorder{}
	env := weathertest.Environment(rec)
	env.Clock = weathertest.Minute(59)

	// Two active hours left: the rest of this one is zero, the next is 30s.
	e := mustEvent(t, weather.RainStorm, 0, 1, 0, 1, env)
	e.StartEffect()
	if e.PendingSubEvents() != 1 {
		t.Fatalf("expected a strike inside the last hour, got %d pending", e.PendingSubEvents())
	}
}

func TestStoppedStormNeverStrikes(t *testing.T) {
	rec := &weathertest.Recorder{}
	env := weathertest.Environment(rec)
	strikes := 0
	env.Signals.Subscribe(weather.SignalStartPanic, func(...any) { strikes++ })

	e := mustEvent(t, weather.RainStorm, 0, 3, 0, 1, env)
	e.StartEffect()
	e.StopEffect()
	e.Update(100)
	if strikes != 0 {
		t.Fatalf("expected no strikes after stop, got %d", strikes)
	}
}

func TestStrikesAreScopedToTheirStorm(t *testing.T) {
	rec := &weathertest.Recorder{}
	env := weathertest.Environment(rec)
	strikes := 0
	env.Signals.Subscribe(weather.SignalStartPanic, func(...any) { strikes++ })

	a := mustEvent(t, weather.RainStorm, 0, 3, 0, weather.MaxSeverity, env)
	b := mustEvent(t, weather.RainStorm, 0, 3, 0, weather.MaxSeverity, env)
	a.StartEffect()

	b.Update(10)
	if strikes != 0 {
		t.Fatalf("an idle storm must not fire another storm's strike")
	}
	a.Update(4)
	if strikes != 1 {
		t.Fatalf("expected one strike, got %d", strikes)
	}
}

func TestLightningColour(t *testing.T) {
	peak := weather.LightningColour(weather.MaxSeverity, 0.25)
	if math.Abs(float64(peak.R)-0.8) > 1e-6 || peak.R != peak.G || peak.G != peak.B || peak.A != 0 {
		t.Fatalf("peak colour = %+v", peak)
	}
	start := weather.LightningColour(weather.MaxSeverity, 0)
	if math.Abs(float64(start.R)-0.032) > 1e-6 {
		t.Fatalf("start colour = %+v", start)
	}
}
