package weather

import (
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/events"
)

var ErrInvalidEvent = errors.New("invalid weather event")

type State int

const (
	Scheduled State = iota
	Active
	Expired
)

func (s State) String() string {
	switch s {
	case Scheduled:
		return "scheduled"
	case Active:
		return "active"
	case Expired:
		return "expired"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Event is one pending or running weather event. Its countdowns only move
// through AdvanceHour.
type Event struct {
	id       ulid.ULID
	kind     Kind
	priority int
	severity float64

	hoursUntil int
	duration   int
	// instant events were configured with no active window at all.
	instant bool
	// lapsed is set on the first hourly pass after the window ran out.
	lapsed bool

	env    *Environment
	local  *events.Handler
	logger *zap.Logger

	running     bool
	strike      *events.ScheduledEvent
	soundID     int64
	soundActive bool
}

func New(kind Kind, hoursUntil, duration, priority int, severity float64, env *Environment) (*Event, error) {
	if kind < RainStorm || kind > AcidShower {
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidEvent, int(kind))
	}
	if hoursUntil < 0 {
		return nil, fmt.Errorf("%w: hours until start must be >= 0, got %d", ErrInvalidEvent, hoursUntil)
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: duration must be >= 0, got %d", ErrInvalidEvent, duration)
	}

	env = env.Normalised()
	e := &Event{
		id:         ulid.Make(),
		kind:       kind,
		priority:   priority,
		severity:   severity,
		hoursUntil: hoursUntil,
		duration:   duration,
		instant:    duration == 0,
		env:        env,
		local:      events.NewHandler(),
		logger:     env.Logger.Named("weather").With(zap.Stringer("kind", kind)),
	}
	e.lapsed = e.instant && hoursUntil == 0

	if profileFor(kind).lightning {
		e.local.Subscribe(SignalLightningStrike, e.triggerStrike)
	}
	return e, nil
}

func (e *Event) ID() ulid.ULID          { return e.id }
func (e *Event) Kind() Kind             { return e.kind }
func (e *Event) Priority() int          { return e.priority }
func (e *Event) Severity() float64      { return e.severity }
func (e *Event) HoursUntilStart() int   { return e.hoursUntil }
func (e *Event) RemainingDuration() int { return e.duration }

// EffectRunning reports whether StartEffect ran without a matching StopEffect.
func (e *Event) EffectRunning() bool { return e.running }

func (e *Event) State() State {
	switch {
	case e.hoursUntil > 0:
		return Scheduled
	case e.lapsed:
		return Expired
	default:
		return Active
	}
}

func (e *Event) IsActive() bool  { return e.State() == Active }
func (e *Event) IsExpired() bool { return e.State() == Expired }

// AdvanceHour moves the event one in-game hour forward. The hour that brings
// hoursUntil to zero is the first active hour; the hour in which duration
// reaches zero is the last one, and the following pass expires the event.
func (e *Event) AdvanceHour() {
	switch {
	case e.hoursUntil > 0:
		e.hoursUntil--
	case e.duration > 0:
		e.duration--
	default:
		e.lapsed = true
	}
	if e.instant && e.hoursUntil == 0 {
		e.lapsed = true
	}
}

// Update drives the event's own sub-event scheduler by delta seconds.
func (e *Event) Update(delta float64) {
	e.local.Advance(delta)
}

// PendingSubEvents reports scheduled sub-events that have not fired yet.
func (e *Event) PendingSubEvents() int {
	return e.local.Pending()
}

func (e *Event) StartEffect() {
	e.logger.Info("starting weather effect",
		zap.Stringer("id", e.id),
		zap.Float64("severity", e.severity),
		zap.Int("duration", e.duration))

	p := profileFor(e.kind)
	signals := e.env.Signals

	signals.Dispatch(SignalStartWaterLevel, p.waterRate(e.severity))
	if p.dousesFlames {
		signals.Dispatch(SignalDouseFlames)
	}
	if p.startSignal != "" {
		signals.Dispatch(p.startSignal, p.signalValue(e.severity))
	}

	e.env.Particles.StartEffect(p.particles)
	e.env.Lighting.SetBrightnessMultiplier(p.brightness(e.severity))
	e.running = true
	if p.lightning {
		e.scheduleNextStrike()
	}

	id, err := e.env.Sound.Play(p.sound, true)
	if err != nil {
		e.logger.Error("failed to play weather sound", zap.String("sound", string(p.sound)), zap.Error(err))
	} else {
		e.soundID = id
		e.soundActive = true
	}

	signals.Dispatch(SignalEffectStarted, e.id, e.kind)
}

func (e *Event) StopEffect() {
	e.logger.Info("stopping weather effect", zap.Stringer("id", e.id))

	p := profileFor(e.kind)
	signals := e.env.Signals

	signals.Dispatch(SignalStopWaterLevel)
	if p.dousesFlames {
		signals.Dispatch(SignalReigniteFlames)
	}
	if p.stopSignal != "" {
		signals.Dispatch(p.stopSignal)
	}

	e.env.Particles.StopEffect(p.particles)
	e.env.Lighting.SetBrightnessMultiplier(1.0)
	e.local.Cancel(e.strike)
	e.strike = nil
	e.running = false

	if e.soundActive {
		if err := e.env.Sound.Stop(p.sound, e.soundID); err != nil {
			e.logger.Error("failed to stop weather sound", zap.String("sound", string(p.sound)), zap.Error(err))
		}
		e.soundActive = false
	}

	signals.Dispatch(SignalEffectStopped, e.id, e.kind)
}

// Record captures the persisted fields using the current countdown values.
func (e *Event) Record() Record {
	return Record{
		Name:       e.kind.String(),
		Severity:   e.severity,
		Duration:   e.duration,
		HoursUntil: e.hoursUntil,
		Priority:   e.priority,
		Started:    e.IsActive(),
	}
}

func (e *Event) String() string {
	return fmt.Sprintf("%s(hours=%d duration=%d priority=%d severity=%.2f %s)",
		e.kind, e.hoursUntil, e.duration, e.priority, e.severity, e.State())
}

// Record is one persisted weather event.
type Record struct {
	Name       string  `json:"name" jsonschema:"enum=RainStormEvent,enum=BlizzardEvent,enum=SolarSurgeEvent,enum=AcidShowerEvent"`
	Severity   float64 `json:"severity"`
	Duration   int     `json:"duration"`
	HoursUntil int     `json:"hoursUntil"`
	Priority   int     `json:"priority"`
	// Started marks an event inside its active window, so a final hour at
	// duration 0 is not mistaken for an instantaneous event on load.
	Started    bool    `json:"started,omitempty"`
}
