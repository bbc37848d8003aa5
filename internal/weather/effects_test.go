package weather

import (
	"math"
	"testing"
)

func TestDescribe(t *testing.T) {
	storm := Describe(RainStorm, MaxSeverity)
	if storm.Particles != ParticleRain || !storm.Lightning || !storm.DousesFlames {
		t.Fatalf("unexpected storm profile %+v", storm)
	}
	if math.Abs(storm.Brightness-0.6) > 1e-9 || math.Abs(storm.WaterRate+0.002) > 1e-9 {
		t.Fatalf("unexpected storm magnitudes %+v", storm)
	}
	if storm.StartSignal != "" || storm.SignalValue != 0 {
		t.Fatalf("storms carry no extra signal, got %+v", storm)
	}

	surge := Describe(SolarSurge, 0)
	if surge.StartSignal != SignalStartPowerSurge || surge.SignalValue != 1 || surge.Brightness != 1 {
		t.Fatalf("unexpected surge profile %+v", surge)
	}

	unknown := Describe(Kind(9), 1)
	if unknown.Brightness != 1 || unknown.Particles != "" {
		t.Fatalf("unknown kinds should be inert, got %+v", unknown)
	}
}
