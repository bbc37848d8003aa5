package climate

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

// State is the persisted form of a controller.
type State struct {
	Events []weather.Record `json:"Events"`
}

// LoadReport summarises a Restore. Skipped records are not fatal.
type LoadReport struct {
	Loaded  int
	Skipped []error
}

// Snapshot records every tracked event with its current countdowns.
func (c *Controller) Snapshot() State {
	state := State{Events: make([]weather.Record, 0, len(c.events))}
	for _, ev := range c.events {
		state.Events = append(state.Events, ev.Record())
	}
	return state
}

// Restore replaces all events with the ones in state. Each countdown is
// pushed back by one hour since the first hourly tick after a load would
// otherwise consume an hour the save already accounted for.
func (c *Controller) Restore(state State) LoadReport {
	if cur := c.Current(); cur != nil {
		cur.StopEffect()
	}
	c.clearCurrent()
	c.ClearOverlay()
	clear(c.events)
	c.events = c.events[:0]

	var report LoadReport
	for i, rec := range state.Events {
		kind, err := weather.ParseKind(rec.Name)
		if err != nil {
			err = fmt.Errorf("record %d: %w", i, err)
			c.logger.Error("skipping saved weather event", zap.Int("index", i), zap.Error(err))
			report.Skipped = append(report.Skipped, err)
			continue
		}

		hours, duration := rec.HoursUntil, rec.Duration
		if hours == 0 {
			if duration > 0 || rec.Started {
				duration++
			}
		} else {
			hours++
		}

		ev, err := c.NewEvent(kind, hours, duration, rec.Priority, rec.Severity)
		if err != nil {
			err = fmt.Errorf("record %d: %w", i, err)
			c.logger.Error("skipping saved weather event", zap.Int("index", i), zap.Error(err))
			report.Skipped = append(report.Skipped, err)
			continue
		}
		_ = c.AddEvent(ev)
		report.Loaded++
	}
	c.logger.Info("weather restored", zap.Int("loaded", report.Loaded), zap.Int("skipped", len(report.Skipped)))
	return report
}

func Decode(r io.Reader) (State, error) {
	var state State
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return State{}, fmt.Errorf("decode climate state: %w", err)
	}
	return state, nil
}

func Encode(w io.Writer, state State) error {
	if state.Events == nil {
		state.Events = []weather.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("encode climate state: %w", err)
	}
	return nil
}
