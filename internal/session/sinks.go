package session

import (
	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

// LightState holds the scene lighting the active weather asks for. Renderers
// read it every frame.
type LightState struct {
	brightness float64
	offset     weather.Colour
}

func NewLightState() *LightState {
	return &LightState{brightness: 1}
}

func (l *LightState) SetBrightnessMultiplier(m float64) { l.brightness = m }
func (l *LightState) SetColourOffset(c weather.Colour)  { l.offset = c }

func (l *LightState) Brightness() float64    { return l.brightness }
func (l *LightState) Offset() weather.Colour { return l.offset }

// Tint is the colour offset scaled by the brightness multiplier, clamped to
// [0, 1] per channel.
func (l *LightState) Tint() weather.Colour {
	scale := float32(l.brightness)
	return weather.Colour{
		R: clampUnit(l.offset.R * scale),
		G: clampUnit(l.offset.G * scale),
		B: clampUnit(l.offset.B * scale),
		A: clampUnit(l.offset.A),
	}
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// logParticles stands in for a particle system: it records which effects are
// running and logs the changes.
type logParticles struct {
	logger  *zap.Logger
	running map[weather.ParticleEffect]bool
}

func newLogParticles(logger *zap.Logger) *logParticles {
	return &logParticles{logger: logger, running: make(map[weather.ParticleEffect]bool)}
}

func (p *logParticles) StartEffect(fx weather.ParticleEffect) {
	p.running[fx] = true
	p.logger.Debug("particles started", zap.String("effect", string(fx)))
}

func (p *logParticles) StopEffect(fx weather.ParticleEffect) {
	delete(p.running, fx)
	p.logger.Debug("particles stopped", zap.String("effect", string(fx)))
}

// logSound hands out playback ids without producing audio.
type logSound struct {
	logger *zap.Logger
	nextID int64
	loops  map[int64]weather.SoundEffect
}

func newLogSound(logger *zap.Logger) *logSound {
	return &logSound{logger: logger, loops: make(map[int64]weather.SoundEffect)}
}

func (s *logSound) Play(fx weather.SoundEffect, loop bool) (int64, error) {
	s.nextID++
	if loop {
		s.loops[s.nextID] = fx
	}
	s.logger.Debug("sound played", zap.String("sound", string(fx)), zap.Bool("loop", loop), zap.Int64("id", s.nextID))
	return s.nextID, nil
}

func (s *logSound) Stop(fx weather.SoundEffect, id int64) error {
	delete(s.loops, id)
	s.logger.Debug("sound stopped", zap.String("sound", string(fx)), zap.Int64("id", id))
	return nil
}
