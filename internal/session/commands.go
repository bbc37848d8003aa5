package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/appengine-ltd/survive-it-weather/internal/climate"
	"github.com/appengine-ltd/survive-it-weather/internal/parser"
	"github.com/appengine-ltd/survive-it-weather/internal/store"
	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

// Defaults for "add" arguments that were left out.
const (
	defaultAddHours    = 0
	defaultAddDuration = 2
	defaultAddPriority = 1
	defaultAddSeverity = 0.75
)

type CommandResult struct {
	Handled       bool
	Message       string
	HoursAdvanced int
	Quit          bool
}

// ParseContext tells the parser what "it" refers to.
func (s *Session) ParseContext() parser.ParseContext {
	return parser.ParseContext{LastKind: s.lastKind}
}

// Execute runs one parsed command against the session.
func (s *Session) Execute(ctx context.Context, intent parser.Intent) CommandResult {
	if intent.Clarify != nil {
		return CommandResult{Message: clarifyMessage(intent.Clarify)}
	}
	switch intent.Verb {
	case "help":
		return CommandResult{Handled: true, Message: helpMessage()}
	case "status":
		return CommandResult{Handled: true, Message: FormatStatus(s.Status())}
	case "events":
		return CommandResult{Handled: true, Message: formatEvents(s.Status().Events)}
	case "hour":
		n := quantity(intent, 1)
		s.clock.SkipHours(n)
		return CommandResult{Handled: true, HoursAdvanced: n, Message: fmt.Sprintf("%d hour(s) later. %s", n, FormatStatus(s.Status()))}
	case "day":
		n := quantity(intent, 1)
		s.clock.SkipDays(n)
		return CommandResult{Handled: true, HoursAdvanced: n * 24, Message: fmt.Sprintf("%d day(s) later. %s", n, FormatStatus(s.Status()))}
	case "add":
		return s.executeAdd(intent.Args)
	case "frame":
		return s.executeFrame(intent.Args)
	case "save":
		slot, err := slotArg(intent.Args)
		if err != nil {
			return CommandResult{Handled: true, Message: err.Error()}
		}
		if err := s.Save(ctx, slot); err != nil {
			return CommandResult{Handled: true, Message: fmt.Sprintf("Save failed: %v", err)}
		}
		return CommandResult{Handled: true, Message: fmt.Sprintf("Saved to slot %d.", slot)}
	case "load":
		return s.executeLoad(ctx, intent.Args)
	case "slots":
		return s.executeSlots(ctx)
	case "quit":
		return CommandResult{Handled: true, Quit: true, Message: "Bye."}
	default:
		return CommandResult{Message: fmt.Sprintf("Unknown command %q. Try help.", intent.Raw)}
	}
}

func (s *Session) executeAdd(args []string) CommandResult {
	if len(args) == 0 {
		return CommandResult{Handled: true, Message: "Usage: add <kind> [hours] [duration] [priority] [severity]"}
	}
	kind, ok := weather.ClosestKind(args[0])
	if !ok {
		return CommandResult{Handled: true, Message: fmt.Sprintf("Unknown weather %q.", args[0])}
	}

	ints := []int{defaultAddHours, defaultAddDuration, defaultAddPriority}
	names := []string{"hours", "duration", "priority"}
	for i := range ints {
		if len(args) <= i+1 {
			break
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return CommandResult{Handled: true, Message: fmt.Sprintf("%s must be a whole number, got %q.", names[i], args[i+1])}
		}
		ints[i] = n
	}
	severity := defaultAddSeverity
	if len(args) > 4 {
		v, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return CommandResult{Handled: true, Message: fmt.Sprintf("severity must be a number, got %q.", args[4])}
		}
		severity = v
	}

	ev, err := s.controller.NewEvent(kind, ints[0], ints[1], ints[2], severity)
	if err != nil {
		return CommandResult{Handled: true, Message: fmt.Sprintf("Cannot add %s: %v", kind.Label(), err)}
	}
	if err := s.controller.AddEvent(ev); err != nil {
		return CommandResult{Handled: true, Message: fmt.Sprintf("Cannot add %s: %v", kind.Label(), err)}
	}
	s.lastKind = kind.Label()
	return CommandResult{Handled: true, Message: fmt.Sprintf("Added %s.", describeEvent(viewOf(ev)))}
}

func (s *Session) executeFrame(args []string) CommandResult {
	if len(args) == 0 {
		return CommandResult{Handled: true, Message: "Usage: frame <seconds>"}
	}
	delta, err := strconv.ParseFloat(args[0], 64)
	if err != nil || delta < 0 {
		return CommandResult{Handled: true, Message: fmt.Sprintf("seconds must be a non-negative number, got %q.", args[0])}
	}
	s.Frame(delta)
	return CommandResult{Handled: true, Message: FormatStatus(s.Status())}
}

func (s *Session) executeLoad(ctx context.Context, args []string) CommandResult {
	slot, err := slotArg(args)
	if err != nil {
		return CommandResult{Handled: true, Message: err.Error()}
	}
	report, err := s.Load(ctx, slot)
	if errors.Is(err, store.ErrSlotNotFound) {
		return CommandResult{Handled: true, Message: fmt.Sprintf("Slot %d is empty.", slot)}
	}
	if err != nil {
		return CommandResult{Handled: true, Message: fmt.Sprintf("Load failed: %v", err)}
	}
	return CommandResult{Handled: true, Message: loadMessage(slot, report)}
}

func (s *Session) executeSlots(ctx context.Context) CommandResult {
	entries, err := s.Slots(ctx)
	if err != nil {
		return CommandResult{Handled: true, Message: fmt.Sprintf("Cannot list saves: %v", err)}
	}
	if len(entries) == 0 {
		return CommandResult{Handled: true, Message: "No saves yet."}
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("slot %d: day %d %02d:00, %d event(s), saved %s",
			e.Slot, e.Day, e.Hour, e.Events, e.SavedAt.Local().Format("2006-01-02 15:04")))
	}
	return CommandResult{Handled: true, Message: strings.Join(lines, "\n")}
}

func loadMessage(slot int, report climate.LoadReport) string {
	msg := fmt.Sprintf("Loaded slot %d: %d event(s).", slot, report.Loaded)
	for _, err := range report.Skipped {
		msg += "\nSkipped " + err.Error()
	}
	return msg
}

func quantity(intent parser.Intent, fallback int) int {
	if intent.Quantity == nil || intent.Quantity.N < 1 {
		return fallback
	}
	return intent.Quantity.N
}

func slotArg(args []string) (int, error) {
	if len(args) == 0 {
		return DefaultSlot, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("slot must be a positive number, got %q", args[0])
	}
	return n, nil
}

func clarifyMessage(q *parser.ClarifyQuestion) string {
	if len(q.Options) == 0 {
		return q.Prompt
	}
	opts := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if cmd := parser.IntentToCommandString(o); cmd != "" {
			opts = append(opts, cmd)
		}
	}
	return q.Prompt + " " + strings.Join(opts, " | ")
}

func helpMessage() string {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, c := range parser.DefaultRegistry().Commands() {
		b.WriteString("\n  ")
		b.WriteString(c.Canonical)
		if len(c.Aliases) > 0 {
			b.WriteString(" (")
			b.WriteString(strings.Join(c.Aliases, ", "))
			b.WriteString(")")
		}
	}
	b.WriteString("\nadd <kind> [hours] [duration] [priority] [severity], e.g. add storm 0 3 2 1.2")
	return b.String()
}

// FormatStatus renders st on one line.
func FormatStatus(st Status) string {
	now := fmt.Sprintf("Day %d %02d:%02d", st.Day, st.Hour, st.Minute)
	if st.Current == nil {
		return now + ", clear skies."
	}
	return fmt.Sprintf("%s, %s (brightness %.2f).", now, describeEvent(*st.Current), st.Brightness)
}

func formatEvents(views []EventView) string {
	if len(views) == 0 {
		return "No weather on the way."
	}
	lines := make([]string, 0, len(views))
	for _, v := range views {
		lines = append(lines, describeEvent(v))
	}
	return strings.Join(lines, "\n")
}

func describeEvent(v EventView) string {
	switch v.State {
	case weather.Scheduled:
		return fmt.Sprintf("%s in %dh for %dh (priority %d, severity %.2f)", v.Label(), v.HoursUntil, v.Duration, v.Priority, v.Severity)
	case weather.Active:
		return fmt.Sprintf("%s, %dh left (priority %d, severity %.2f)", v.Label(), v.Duration, v.Priority, v.Severity)
	default:
		return fmt.Sprintf("%s, over", v.Label())
	}
}
