package events

// Listener receives the arguments passed to Dispatch or ScheduleDelayed.
type Listener func(args ...any)

// Handler is a per-owner signal registry with one-shot delayed dispatch.
// It is not safe for concurrent use; owners drive it from a single loop.
type Handler struct {
	listeners map[string][]Listener
	pending   []*ScheduledEvent
}

type ScheduledEvent struct {
	name      string
	args      []any
	remaining float64
	cancelled bool
	fired     bool
}

func (e *ScheduledEvent) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

func (e *ScheduledEvent) Remaining() float64 {
	if e == nil {
		return 0
	}
	return e.remaining
}

func (e *ScheduledEvent) Cancelled() bool {
	return e != nil && e.cancelled
}

func (e *ScheduledEvent) Fired() bool {
	return e != nil && e.fired
}

func NewHandler() *Handler {
	return &Handler{
		listeners: make(map[string][]Listener),
	}
}

func (h *Handler) Subscribe(name string, fn Listener) {
	if fn == nil {
		return
	}
	h.listeners[name] = append(h.listeners[name], fn)
}

// Dispatch calls every listener registered for name, in registration order.
func (h *Handler) Dispatch(name string, args ...any) {
	listeners := h.listeners[name]
	for _, fn := range listeners {
		fn(args...)
	}
}

func (h *Handler) ScheduleDelayed(delay float64, name string, args ...any) *ScheduledEvent {
	ev := &ScheduledEvent{
		name:      name,
		args:      args,
		remaining: delay,
	}
	h.pending = append(h.pending, ev)
	return ev
}

// Cancel is a no-op for nil, fired or already cancelled events.
func (h *Handler) Cancel(ev *ScheduledEvent) {
	if ev == nil || ev.fired || ev.cancelled {
		return
	}
	ev.cancelled = true
	for i, p := range h.pending {
		if p == ev {
			h.pending = append(h.pending[:i], h.pending[i+1:]...)
			return
		}
	}
}

// Advance counts every pending event down by delta and fires the ones that
// are due, oldest first. Events scheduled from a listener during Advance wait
// for the next call.
func (h *Handler) Advance(delta float64) {
	if len(h.pending) == 0 {
		return
	}

	batch := h.pending
	due := make([]*ScheduledEvent, 0, len(batch))
	for _, ev := range batch {
		ev.remaining -= delta
		if ev.remaining <= 0 {
			due = append(due, ev)
		}
	}
	if len(due) == 0 {
		return
	}

	// Due events leave the queue before any listener runs so a listener can
	// reschedule the same name without tripping over its own handle.
	kept := make([]*ScheduledEvent, 0, len(batch)-len(due))
	for _, ev := range batch {
		if ev.remaining > 0 {
			kept = append(kept, ev)
		}
	}
	h.pending = kept

	for _, ev := range due {
		if ev.cancelled {
			continue
		}
		ev.fired = true
		h.Dispatch(ev.name, ev.args...)
	}
}

func (h *Handler) HasListeners(name string) bool {
	return len(h.listeners[name]) > 0
}

func (h *Handler) ListenerCount(name string) int {
	return len(h.listeners[name])
}

// Pending reports the number of delayed events that have neither fired nor
// been cancelled.
func (h *Handler) Pending() int {
	return len(h.pending)
}
