// Package audio synthesises the weather sounds with beep. Nothing is loaded
// from disk; every effect is generated.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

const SampleRate = beep.SampleRate(44100)

var (
	ErrUnknownSound = errors.New("unknown sound effect")
	ErrNotPlaying   = errors.New("sound is not playing")
)

// one-shot lengths
const (
	strikeLength  = 800 * time.Millisecond
	oneShotLength = 2 * time.Second
)

// Synth implements weather.Sound on top of a beep mixer. Looping sounds run
// until stopped; one-shots drain on their own.
type Synth struct {
	locker sync.Locker
	mixer  *beep.Mixer
	volume float64
	rng    *rand.Rand

	nextID int64
	loops  map[int64]*beep.Ctrl
}

// NewSynth returns a synth with master volume in [0, 1]. The mixer is not
// attached to a device; see Open.
func NewSynth(volume float64) *Synth {
	return &Synth{
		locker: &sync.Mutex{},
		mixer:  &beep.Mixer{},
		volume: volume,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		loops:  make(map[int64]*beep.Ctrl),
	}
}

// Streamer is the mixed output of every playing sound. It never drains, so
// it can stay attached to a device while nothing is playing.
func (s *Synth) Streamer() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, _ := s.mixer.Stream(samples)
		clear(samples[n:])
		return len(samples), true
	})
}

// Playing reports how many looping sounds are running.
func (s *Synth) Playing() int {
	s.locker.Lock()
	defer s.locker.Unlock()
	return len(s.loops)
}

func (s *Synth) Play(fx weather.SoundEffect, loop bool) (int64, error) {
	src, ok := s.source(fx)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSound, fx)
	}

	s.locker.Lock()
	defer s.locker.Unlock()
	s.nextID++
	if !loop {
		length := oneShotLength
		if fx == weather.SoundLightningStrike {
			length = strikeLength
		}
		s.mixer.Add(gain(beep.Take(SampleRate.N(length), src), s.volume))
		return s.nextID, nil
	}
	ctrl := &beep.Ctrl{Streamer: gain(src, s.volume)}
	s.loops[s.nextID] = ctrl
	s.mixer.Add(ctrl)
	return s.nextID, nil
}

func (s *Synth) Stop(fx weather.SoundEffect, id int64) error {
	s.locker.Lock()
	defer s.locker.Unlock()
	ctrl, ok := s.loops[id]
	if !ok {
		return fmt.Errorf("%w: %s #%d", ErrNotPlaying, fx, id)
	}
	// A nil streamer makes the mixer drop the ctrl on its next pass.
	ctrl.Streamer = nil
	delete(s.loops, id)
	return nil
}

func (s *Synth) source(fx weather.SoundEffect) (beep.Streamer, bool) {
	switch fx {
	case weather.SoundStorm:
		return &noise{rng: s.rng, amp: 0.5, smooth: 0.97}, true
	case weather.SoundBlizzard:
		return &wind{low: 300, high: 900, cycle: SampleRate.N(3 * time.Second)}, true
	case weather.SoundSolarSurge:
		return &hum{freq: 110}, true
	case weather.SoundAcidShower:
		return &noise{rng: s.rng, amp: 0.25, smooth: 0.3}, true
	case weather.SoundLightningStrike:
		return &crack{noise: noise{rng: s.rng, amp: 0.9, smooth: 0.6}, length: SampleRate.N(strikeLength)}, true
	default:
		return nil, false
	}
}

func gain(src beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: src, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: src, Base: 2, Volume: math.Log2(vol)}
}

// noise is white noise through a one-pole low-pass; smooth near 1 gives a
// rumble, near 0 a hiss.
type noise struct {
	rng    *rand.Rand
	amp    float64
	smooth float64
	last   float64
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		white := n.rng.Float64()*2 - 1
		n.last = n.last*n.smooth + white*(1-n.smooth)
		v := n.last * n.amp
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// wind sweeps a sine between low and high Hz once per cycle samples.
type wind struct {
	low, high float64
	cycle     int
	pos       int
	phase     float64
}

func (w *wind) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		c := float64(w.pos%w.cycle) / float64(w.cycle)
		freq := w.low + (w.high-w.low)*0.5*(1-math.Cos(2*math.Pi*c))
		w.phase += freq / float64(SampleRate)
		w.phase -= math.Floor(w.phase)
		v := 0.2 * math.Sin(2*math.Pi*w.phase)
		samples[i][0] = v
		samples[i][1] = v
		w.pos++
	}
	return len(samples), true
}

func (w *wind) Err() error { return nil }

// hum is a mains-like drone with two harmonics.
type hum struct {
	freq float64
	pos  int
}

func (h *hum) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(h.pos) / float64(SampleRate)
		v := 0.2*math.Sin(2*math.Pi*h.freq*t) +
			0.1*math.Sin(2*math.Pi*h.freq*2*t) +
			0.05*math.Sin(2*math.Pi*h.freq*3*t)
		samples[i][0] = v
		samples[i][1] = v
		h.pos++
	}
	return len(samples), true
}

func (h *hum) Err() error { return nil }

// crack is a noise burst with an exponential tail.
type crack struct {
	noise
	length int
	pos    int
}

func (c *crack) Stream(samples [][2]float64) (int, bool) {
	n, _ := c.noise.Stream(samples)
	for i := 0; i < n; i++ {
		env := math.Exp(-5 * float64(c.pos) / float64(c.length))
		samples[i][0] *= env
		samples[i][1] *= env
		c.pos++
	}
	return n, true
}
