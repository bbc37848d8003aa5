package clock

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

const DefaultFPS = 30

// Runner calls a frame function at a steady rate, passing the real time
// since the previous frame.
type Runner struct {
	limiter *rate.Limiter
	now     func() time.Time
}

func NewRunner(fps int) *Runner {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Runner{
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
		now:     time.Now,
	}
}

// Run blocks until ctx is done or frame fails. Cancellation is not an error.
func (r *Runner) Run(ctx context.Context, frame func(delta float64) error) error {
	last := r.now()
	for {
		if err := r.limiter.Wait(ctx); err != nil {
			// Wait fails early when the next frame would land past the deadline.
			if _, ok := ctx.Deadline(); ok || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("frame pacing: %w", err)
		}
		now := r.now()
		delta := now.Sub(last).Seconds()
		last = now
		if err := frame(delta); err != nil {
			return err
		}
	}
}
