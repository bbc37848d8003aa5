package weather

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/events"
)

// Signals dispatched on Environment.Signals. Gameplay systems subscribe to
// these by name; payloads are documented next to each constant.
const (
	SignalEffectStarted  = "weatherEffectStarted" // (ulid.ULID, Kind)
	SignalEffectStopped  = "weatherEffectStopped" // (ulid.ULID, Kind)
	SignalLightingEffect = "lightingEffect"       // (float64 duration, Gradient)

	SignalStartWaterLevel = "startWaterLevelEffect" // (float64 rate)
	SignalStopWaterLevel  = "stopWaterLevelEffect"
	SignalDouseFlames     = "douseFlames"
	SignalReigniteFlames  = "reigniteFlames"
	SignalStartPanic      = "startPanicEffect"
	SignalStartFreeze     = "startFreezeEffect" // (float64 speed multiplier)
	SignalStopFreeze      = "stopFreezeEffect"
	SignalStartPowerSurge = "startPowerSurgeEffect" // (float64 output multiplier)
	SignalStopPowerSurge  = "stopPowerSurgeEffect"
	SignalStartAcidDamage = "startAcidDamageEffect" // (float64 damage per hour)
	SignalStopAcidDamage  = "stopAcidDamageEffect"

	// SignalLightningStrike is local to the storm that schedules it.
	SignalLightningStrike = "lightningStrike"
)

const (
	MaxSeverity          = 1.5
	MaxGeneratedSeverity = 1.2

	DefaultSecondsPerHour = 30.0
)

type ParticleEffect string

const (
	ParticleRain       ParticleEffect = "rain"
	ParticleBlizzard   ParticleEffect = "blizzard"
	ParticleSolarSurge ParticleEffect = "solar_surge"
	ParticleAcidRain   ParticleEffect = "acid_rain"
)

type SoundEffect string

const (
	SoundStorm           SoundEffect = "storm"
	SoundBlizzard        SoundEffect = "blizzard"
	SoundSolarSurge      SoundEffect = "solar_surge"
	SoundAcidShower      SoundEffect = "acid_shower"
	SoundLightningStrike SoundEffect = "lightning_strike"
)

// Colour is an additive colour offset with channels in [0, 1].
type Colour struct {
	R, G, B, A float32
}

// Clear is the "no tint" colour offset.
var Clear = Colour{}

// Gradient maps the progress of a lighting effect, t in [0, 1], to a colour.
type Gradient func(t float64) Colour

type Lighting interface {
	SetBrightnessMultiplier(multiplier float64)
	SetColourOffset(offset Colour)
}

type Particles interface {
	StartEffect(effect ParticleEffect)
	StopEffect(effect ParticleEffect)
}

type Sound interface {
	Play(effect SoundEffect, loop bool) (int64, error)
	Stop(effect SoundEffect, id int64) error
}

// Clock exposes the in-game minute of the current hour.
type Clock interface {
	Minute() int
}

type Rand interface {
	Float64() float64
}

// Environment bundles the collaborators a weather event reports to. Events
// created by one controller share one Environment.
type Environment struct {
	Signals        *events.Handler
	Lighting       Lighting
	Particles      Particles
	Sound          Sound
	Clock          Clock
	Rand           Rand
	SecondsPerHour float64
	Logger         *zap.Logger
}

// Normalised returns a copy of env with every missing collaborator replaced
// by a no-op. A nil env is valid.
func (env *Environment) Normalised() *Environment {
	out := Environment{}
	if env != nil {
		out = *env
	}
	if out.Signals == nil {
		out.Signals = events.NewHandler()
	}
	if out.Lighting == nil {
		out.Lighting = noopLighting{}
	}
	if out.Particles == nil {
		out.Particles = noopParticles{}
	}
	if out.Sound == nil {
		out.Sound = noopSound{}
	}
	if out.Clock == nil {
		out.Clock = topOfHour{}
	}
	if out.Rand == nil {
		out.Rand = globalRand{}
	}
	if out.SecondsPerHour <= 0 {
		out.SecondsPerHour = DefaultSecondsPerHour
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	return &out
}

type noopLighting struct{}

func (noopLighting) SetBrightnessMultiplier(float64) {}
func (noopLighting) SetColourOffset(Colour)          {}

type noopParticles struct{}

func (noopParticles) StartEffect(ParticleEffect) {}
func (noopParticles) StopEffect(ParticleEffect)  {}

type noopSound struct{}

func (noopSound) Play(SoundEffect, bool) (int64, error) { return 0, nil }
func (noopSound) Stop(SoundEffect, int64) error         { return nil }

type topOfHour struct{}

func (topOfHour) Minute() int { return 0 }

type globalRand struct{}

func (globalRand) Float64() float64 {
	// Non-cryptographic PRNG is fine for visual timing.
	// #nosec G404
	return rand.Float64()
}
