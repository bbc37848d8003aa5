//go:build cgo

package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/speaker"
)

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// Open plays s on the default output device. The returned func releases the
// device.
func Open(s *Synth) (func(), error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	// The speaker goroutine reads the mixer under its own lock.
	s.locker = speakerLock{}
	speaker.Play(s.Streamer())
	return func() {
		speaker.Clear()
		speaker.Close()
	}, nil
}
