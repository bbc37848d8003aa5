package session

import (
	"fmt"

	"github.com/appengine-ltd/survive-it-weather/internal/events"
	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

// Gameplay is the state the weather signals drive outside the scene: crop
// watering, fires, freezing, power output and acid damage.
type Gameplay struct {
	WaterRate    float64
	FlamesDoused bool
	FreezeFactor float64
	PowerFactor  float64
	AcidDamage   float64
	Panics       int
}

func defaultGameplay() Gameplay {
	return Gameplay{FreezeFactor: 1, PowerFactor: 1}
}

func (g Gameplay) String() string {
	fire := "burning"
	if g.FlamesDoused {
		fire = "doused"
	}
	return fmt.Sprintf("water %+.4f/h  fires %s  freeze x%.2f  power x%.2f  acid %.2f/h  panics %d",
		g.WaterRate, fire, g.FreezeFactor, g.PowerFactor, g.AcidDamage, g.Panics)
}

func firstFloat(args []any) float64 {
	if len(args) == 0 {
		return 0
	}
	v, _ := args[0].(float64)
	return v
}

// bindGameplay keeps g in step with the weather signals on bus.
func bindGameplay(bus *events.Handler, g *Gameplay) {
	bus.Subscribe(weather.SignalStartWaterLevel, func(args ...any) { g.WaterRate = firstFloat(args) })
	bus.Subscribe(weather.SignalStopWaterLevel, func(...any) { g.WaterRate = 0 })
	bus.Subscribe(weather.SignalDouseFlames, func(...any) { g.FlamesDoused = true })
	bus.Subscribe(weather.SignalReigniteFlames, func(...any) { g.FlamesDoused = false })
	bus.Subscribe(weather.SignalStartFreeze, func(args ...any) { g.FreezeFactor = firstFloat(args) })
	bus.Subscribe(weather.SignalStopFreeze, func(...any) { g.FreezeFactor = 1 })
	bus.Subscribe(weather.SignalStartPowerSurge, func(args ...any) { g.PowerFactor = firstFloat(args) })
	bus.Subscribe(weather.SignalStopPowerSurge, func(...any) { g.PowerFactor = 1 })
	bus.Subscribe(weather.SignalStartAcidDamage, func(args ...any) { g.AcidDamage = firstFloat(args) })
	bus.Subscribe(weather.SignalStopAcidDamage, func(...any) { g.AcidDamage = 0 })
	bus.Subscribe(weather.SignalStartPanic, func(...any) { g.Panics++ })
}
