// Package session wires a clock, a climate controller and a save store into
// one playable weather session shared by every front-end.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/climate"
	"github.com/appengine-ltd/survive-it-weather/internal/clock"
	"github.com/appengine-ltd/survive-it-weather/internal/config"
	"github.com/appengine-ltd/survive-it-weather/internal/store"
	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

const DefaultSlot = 1

type Session struct {
	id     uuid.UUID
	cfg    config.Config
	logger *zap.Logger

	clock      *clock.Clock
	controller *climate.Controller
	store      store.Store
	light      *LightState
	gameplay   Gameplay

	lastKind string
}

type options struct {
	logger    *zap.Logger
	store     store.Store
	rand      climate.Rand
	particles weather.Particles
	sound     weather.Sound
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStore replaces the backend chosen from the config.
func WithStore(s store.Store) Option {
	return func(o *options) { o.store = s }
}

// WithRand replaces the seeded random source used for daily generation.
func WithRand(r climate.Rand) Option {
	return func(o *options) { o.rand = r }
}

func WithParticles(p weather.Particles) Option {
	return func(o *options) { o.particles = p }
}

func WithSound(s weather.Sound) Option {
	return func(o *options) { o.sound = s }
}

// New builds a session from cfg. A zero cfg.Seed seeds from the wall clock.
func New(cfg config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.store == nil {
		s, err := store.Open(cfg)
		if err != nil {
			return nil, fmt.Errorf("open save store: %w", err)
		}
		o.store = s
	}
	if o.rand == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		o.rand = climate.NewSeededRand(seed)
	}
	if o.particles == nil {
		o.particles = newLogParticles(o.logger.Named("particles"))
	}
	if o.sound == nil {
		o.sound = newLogSound(o.logger.Named("sound"))
	}

	s := &Session{
		id:       uuid.New(),
		cfg:      cfg,
		logger:   o.logger.Named("session"),
		clock:    clock.New(cfg.SecondsPerHour, cfg.StartHour),
		store:    o.store,
		light:    NewLightState(),
		gameplay: defaultGameplay(),
	}
	env := &weather.Environment{
		Lighting:       s.light,
		Particles:      o.particles,
		Sound:          o.sound,
		Clock:          s.clock,
		SecondsPerHour: cfg.SecondsPerHour,
		Logger:         o.logger.Named("weather"),
	}
	s.controller = climate.NewController(
		climate.WithLogger(o.logger),
		climate.WithRand(o.rand),
		climate.WithEnvironment(env),
	)
	s.controller.Attach(s.clock)
	bindGameplay(s.controller.Bus(), &s.gameplay)

	s.logger.Info("session started",
		zap.Stringer("session_id", s.id),
		zap.Int("day", s.clock.Day()),
		zap.Int("hour", s.clock.Hour()),
		zap.String("save_backend", cfg.SaveBackend))
	return s, nil
}

func (s *Session) ID() uuid.UUID                   { return s.id }
func (s *Session) Clock() *clock.Clock             { return s.clock }
func (s *Session) Controller() *climate.Controller { return s.controller }
func (s *Session) Light() *LightState              { return s.light }
func (s *Session) Gameplay() Gameplay              { return s.gameplay }
func (s *Session) LastKind() string                { return s.lastKind }

// Frame advances the session by delta real seconds.
func (s *Session) Frame(delta float64) {
	s.clock.Update(delta)
	s.controller.AdvanceFrame(delta)
}

// Save writes the clock position and every tracked event to slot.
func (s *Session) Save(ctx context.Context, slot int) error {
	doc := store.Document{
		SessionID: s.id,
		Day:       s.clock.Day(),
		Hour:      s.clock.Hour(),
		Minute:    s.clock.Minute(),
		Climate:   s.controller.Snapshot(),
	}
	if err := s.store.Save(ctx, slot, doc); err != nil {
		return fmt.Errorf("save slot %d: %w", slot, err)
	}
	s.logger.Info("session saved", zap.Int("slot", slot), zap.Int("events", len(doc.Climate.Events)))
	return nil
}

// Load replaces the clock position and the weather with slot's contents.
func (s *Session) Load(ctx context.Context, slot int) (climate.LoadReport, error) {
	doc, err := s.store.Load(ctx, slot)
	if err != nil {
		return climate.LoadReport{}, fmt.Errorf("load slot %d: %w", slot, err)
	}
	s.clock.Set(doc.Day, doc.Hour, doc.Minute)
	report := s.controller.Restore(doc.Climate)
	if doc.SessionID != uuid.Nil {
		s.id = doc.SessionID
	}
	s.logger.Info("session loaded",
		zap.Int("slot", slot),
		zap.Stringer("session_id", s.id),
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped", len(report.Skipped)))
	return report, nil
}

// Slots lists the saved slots, newest first.
func (s *Session) Slots(ctx context.Context) ([]store.Entry, error) {
	return s.store.List(ctx)
}

func (s *Session) Close() error {
	return s.store.Close()
}

// EventView is a read-only copy of one tracked weather event.
type EventView struct {
	ID         string
	Kind       weather.Kind
	State      weather.State
	HoursUntil int
	Duration   int
	Priority   int
	Severity   float64
}

func (v EventView) Label() string { return v.Kind.Label() }

type Status struct {
	Day, Hour, Minute int
	Current           *EventView
	Events            []EventView
	Brightness        float64
	Tint              weather.Colour
	Flashing          bool
	Gameplay          Gameplay
}

// Status snapshots the session for renderers.
func (s *Session) Status() Status {
	st := Status{
		Day:        s.clock.Day(),
		Hour:       s.clock.Hour(),
		Minute:     s.clock.Minute(),
		Brightness: s.light.Brightness(),
		Tint:       s.light.Tint(),
		Gameplay:   s.gameplay,
	}
	_, _, st.Flashing = s.controller.Overlay()
	for _, ev := range s.controller.WeatherEvents() {
		st.Events = append(st.Events, viewOf(ev))
	}
	if cur := s.controller.Current(); cur != nil {
		v := viewOf(cur)
		st.Current = &v
	}
	return st
}

func viewOf(ev *weather.Event) EventView {
	return EventView{
		ID:         ev.ID().String(),
		Kind:       ev.Kind(),
		State:      ev.State(),
		HoursUntil: ev.HoursUntilStart(),
		Duration:   ev.RemainingDuration(),
		Priority:   ev.Priority(),
		Severity:   ev.Severity(),
	}
}
