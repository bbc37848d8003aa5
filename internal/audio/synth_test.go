package audio

import (
	"errors"
	"testing"

	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

func drain(t *testing.T, s *Synth, n int) [][2]float64 {
	t.Helper()
	buf := make([][2]float64, n)
	s.Streamer().Stream(buf)
	return buf
}

func loud(buf [][2]float64) bool {
	for _, frame := range buf {
		if frame[0] != 0 {
			return true
		}
	}
	return false
}

func TestLoopPlaysUntilStopped(t *testing.T) {
	for _, fx := range []weather.SoundEffect{weather.SoundStorm, weather.SoundBlizzard, weather.SoundSolarSurge, weather.SoundAcidShower} {
		s := NewSynth(1)
		id, err := s.Play(fx, true)
		if err != nil {
			t.Fatalf("%s: play: %v", fx, err)
		}
		if s.Playing() != 1 {
			t.Fatalf("%s: expected one loop, got %d", fx, s.Playing())
		}
		if !loud(drain(t, s, 4096)) {
			t.Fatalf("%s: expected audible samples", fx)
		}
		if err := s.Stop(fx, id); err != nil {
			t.Fatalf("%s: stop: %v", fx, err)
		}
		drain(t, s, 16)
		if s.Playing() != 0 || loud(drain(t, s, 512)) {
			t.Fatalf("%s: expected silence after stop", fx)
		}
	}
}

func TestOneShotDrainsOnItsOwn(t *testing.T) {
	s := NewSynth(1)
	if _, err := s.Play(weather.SoundLightningStrike, false); err != nil {
		t.Fatalf("play: %v", err)
	}
	if s.Playing() != 0 {
		t.Fatalf("one-shots are not tracked as loops")
	}
	if !loud(drain(t, s, 1024)) {
		t.Fatalf("expected the strike to be audible")
	}
	drain(t, s, SampleRate.N(strikeLength))
	if loud(drain(t, s, 512)) {
		t.Fatalf("expected the strike to have finished")
	}
}

func TestIDsIncrease(t *testing.T) {
	s := NewSynth(0.5)
	a, _ := s.Play(weather.SoundStorm, true)
	b, _ := s.Play(weather.SoundLightningStrike, false)
	if b <= a {
		t.Fatalf("expected increasing ids, got %d then %d", a, b)
	}
}

func TestErrors(t *testing.T) {
	s := NewSynth(1)
	if _, err := s.Play("tornado", true); !errors.Is(err, ErrUnknownSound) {
		t.Fatalf("expected ErrUnknownSound, got %v", err)
	}
	if err := s.Stop(weather.SoundStorm, 42); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("expected ErrNotPlaying, got %v", err)
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	s := NewSynth(0)
	if _, err := s.Play(weather.SoundSolarSurge, true); err != nil {
		t.Fatalf("play: %v", err)
	}
	if loud(drain(t, s, 2048)) {
		t.Fatalf("expected silence at zero volume")
	}
}
