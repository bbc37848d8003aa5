package weather

// effectProfile is the per-kind half of StartEffect/StopEffect. Every kind
// follows the same pattern; only the magnitudes and the extra signal differ.
type effectProfile struct {
	particles ParticleEffect
	sound     SoundEffect

	waterRate  func(severity float64) float64
	brightness func(severity float64) float64

	dousesFlames bool
	lightning    bool

	startSignal string
	stopSignal  string
	signalValue func(severity float64) float64
}

func profileFor(kind Kind) effectProfile {
	switch kind {
	case RainStorm:
		return effectProfile{
			particles: ParticleRain,
			sound:     SoundStorm,
			// Lowest severity leaves crop tiles untouched; the highest waters
			// them at four times the regular dry rate.
			waterRate: func(s float64) float64 { return -0.002 * s / MaxSeverity },
			brightness: func(s float64) float64 {
				return (1.0-s/MaxSeverity)*0.3 + 0.6
			},
			dousesFlames: true,
			lightning:    true,
		}
	case Blizzard:
		return effectProfile{
			particles:    ParticleBlizzard,
			sound:        SoundBlizzard,
			waterRate:    func(s float64) float64 { return -0.001 * s / MaxSeverity },
			brightness:   func(s float64) float64 { return (1.0-s/MaxSeverity)*0.2 + 0.7 },
			dousesFlames: true,
			startSignal:  SignalStartFreeze,
			stopSignal:   SignalStopFreeze,
			signalValue:  func(s float64) float64 { return 1.0 - 0.5*s/MaxSeverity },
		}
	case SolarSurge:
		return effectProfile{
			particles:   ParticleSolarSurge,
			sound:       SoundSolarSurge,
			waterRate:   func(s float64) float64 { return 0.002 * s / MaxSeverity },
			brightness:  func(s float64) float64 { return 1.0 + 0.4*s/MaxSeverity },
			startSignal: SignalStartPowerSurge,
			stopSignal:  SignalStopPowerSurge,
			signalValue: func(s float64) float64 { return 1.0 + s/MaxSeverity },
		}
	case AcidShower:
		return effectProfile{
			particles:    ParticleAcidRain,
			sound:        SoundAcidShower,
			waterRate:    func(s float64) float64 { return -0.0015 * s / MaxSeverity },
			brightness:   func(s float64) float64 { return (1.0-s/MaxSeverity)*0.25 + 0.65 },
			dousesFlames: true,
			startSignal:  SignalStartAcidDamage,
			stopSignal:   SignalStopAcidDamage,
			signalValue:  func(s float64) float64 { return 0.5 + s/MaxSeverity },
		}
	default:
		return effectProfile{
			waterRate:   func(float64) float64 { return 0 },
			brightness:  func(float64) float64 { return 1 },
			signalValue: func(float64) float64 { return 0 },
		}
	}
}

// Profile summarises what a kind does to its environment at one severity.
type Profile struct {
	Kind         Kind
	Particles    ParticleEffect
	Sound        SoundEffect
	WaterRate    float64
	Brightness   float64
	DousesFlames bool
	Lightning    bool
	StartSignal  string
	StopSignal   string
	SignalValue  float64
}

func Describe(kind Kind, severity float64) Profile {
	p := profileFor(kind)
	out := Profile{
		Kind:         kind,
		Particles:    p.particles,
		Sound:        p.sound,
		WaterRate:    p.waterRate(severity),
		Brightness:   p.brightness(severity),
		DousesFlames: p.dousesFlames,
		Lightning:    p.lightning,
		StartSignal:  p.startSignal,
		StopSignal:   p.stopSignal,
	}
	if p.signalValue != nil {
		out.SignalValue = p.signalValue(severity)
	}
	return out
}
