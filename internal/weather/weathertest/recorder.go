// Package weathertest provides recording collaborators for weather tests.
package weathertest

import (
	"github.com/appengine-ltd/survive-it-weather/internal/events"
	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

// Recorder implements weather.Lighting, weather.Particles and weather.Sound
// and remembers every call.
type Recorder struct {
	Brightness  []float64
	Offsets     []weather.Colour
	StartedFX   []weather.ParticleEffect
	StoppedFX   []weather.ParticleEffect
	Played      []weather.SoundEffect
	Stopped     []weather.SoundEffect
	PlayErr     error
	StopErr     error
	nextSoundID int64
}

func (r *Recorder) SetBrightnessMultiplier(m float64) {
	r.Brightness = append(r.Brightness, m)
}

func (r *Recorder) SetColourOffset(c weather.Colour) {
	r.Offsets = append(r.Offsets, c)
}

func (r *Recorder) StartEffect(fx weather.ParticleEffect) {
	r.StartedFX = append(r.StartedFX, fx)
}

func (r *Recorder) StopEffect(fx weather.ParticleEffect) {
	r.StoppedFX = append(r.StoppedFX, fx)
}

func (r *Recorder) Play(s weather.SoundEffect, loop bool) (int64, error) {
	if r.PlayErr != nil {
		return 0, r.PlayErr
	}
	r.Played = append(r.Played, s)
	r.nextSoundID++
	return r.nextSoundID, nil
}

func (r *Recorder) Stop(s weather.SoundEffect, id int64) error {
	if r.StopErr != nil {
		return r.StopErr
	}
	r.Stopped = append(r.Stopped, s)
	return nil
}

func (r *Recorder) LastBrightness() (float64, bool) {
	if len(r.Brightness) == 0 {
		return 0, false
	}
	return r.Brightness[len(r.Brightness)-1], true
}

func (r *Recorder) LastOffset() (weather.Colour, bool) {
	if len(r.Offsets) == 0 {
		return weather.Colour{}, false
	}
	return r.Offsets[len(r.Offsets)-1], true
}

// Minute is a fixed in-game minute.
type Minute int

func (m Minute) Minute() int { return int(m) }

// FixedRand returns the same value from every Float64 and IntN call; IntN
// scales it into [0, n).
type FixedRand float64

func (f FixedRand) Float64() float64 { return float64(f) }

func (f FixedRand) IntN(n int) int {
	v := int(float64(f) * float64(n))
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Environment returns an environment wired to r with a fresh signal bus.
func Environment(r *Recorder) *weather.Environment {
	return &weather.Environment{
		Signals:        events.NewHandler(),
		Lighting:       r,
		Particles:      r,
		Sound:          r,
		Clock:          Minute(0),
		Rand:           FixedRand(0.5),
		SecondsPerHour: weather.DefaultSecondsPerHour,
	}
}

// EffectCounter counts effect start/stop signals per event.
type EffectCounter struct {
	Started map[string]int
	Stopped map[string]int
	Order   []string
}

func CountEffects(bus *events.Handler) *EffectCounter {
	c := &EffectCounter{
		Started: make(map[string]int),
		Stopped: make(map[string]int),
	}
	bus.Subscribe(weather.SignalEffectStarted, func(args ...any) {
		id := idOf(args)
		c.Started[id]++
		c.Order = append(c.Order, "start:"+id)
	})
	bus.Subscribe(weather.SignalEffectStopped, func(args ...any) {
		id := idOf(args)
		c.Stopped[id]++
		c.Order = append(c.Order, "stop:"+id)
	})
	return c
}

func idOf(args []any) string {
	if len(args) == 0 {
		return ""
	}
	if s, ok := args[0].(interface{ String() string }); ok {
		return s.String()
	}
	return ""
}
