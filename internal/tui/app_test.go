package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zaptest"

	"github.com/appengine-ltd/survive-it-weather/internal/config"
	"github.com/appengine-ltd/survive-it-weather/internal/session"
	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.SaveDir = t.TempDir()
	cfg.Seed = 1
	logger := zaptest.NewLogger(t)
	sess, err := session.New(cfg, session.WithLogger(logger))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	t.Cleanup(func() { _ = sess.Close() })

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	a := New(sess, 30, logger)
	a.screen = screen
	return a
}

func TestHotkeysRunCommands(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	a.handleKey(ctx, tcell.KeyRune, '1')
	cur := a.sess.Status().Current
	if cur == nil || cur.Kind != weather.RainStorm {
		t.Fatalf("expected an active storm, got %+v", cur)
	}

	a.handleKey(ctx, tcell.KeyRune, 'h')
	if a.sess.Clock().Hour() != 7 {
		t.Fatalf("expected 07:00 after h, got %02d", a.sess.Clock().Hour())
	}

	a.handleKey(ctx, tcell.KeyRune, 's')
	if !strings.Contains(a.message, "Saved to slot 1") {
		t.Fatalf("unexpected message %q", a.message)
	}

	a.handleKey(ctx, tcell.KeyRune, 'q')
	if !a.quit {
		t.Fatalf("expected q to quit")
	}
}

func TestEscapeQuits(t *testing.T) {
	a := newTestApp(t)
	a.handleKey(context.Background(), tcell.KeyEscape, 0)
	if !a.quit {
		t.Fatalf("expected escape to quit")
	}
}

func TestCommandMode(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	a.handleKey(ctx, tcell.KeyRune, ':')
	for _, r := range "add snowx" {
		a.handleKey(ctx, tcell.KeyRune, r)
	}
	a.handleKey(ctx, tcell.KeyBackspace2, 0)
	if !a.inputMode || string(a.input) != "add snow" {
		t.Fatalf("unexpected input %q", string(a.input))
	}
	a.handleKey(ctx, tcell.KeyEnter, 0)
	if a.inputMode || a.quit {
		t.Fatalf("expected to leave command mode")
	}
	events := a.sess.Status().Events
	if len(events) != 1 || events[0].Kind != weather.Blizzard {
		t.Fatalf("expected a blizzard, got %+v", events)
	}

	a.handleKey(ctx, tcell.KeyRune, ':')
	a.handleKey(ctx, tcell.KeyEscape, 0)
	if a.inputMode || a.quit {
		t.Fatalf("escape in command mode should only cancel input")
	}
}

func TestSkyColourFollowsLighting(t *testing.T) {
	day := skyColour(session.Status{Brightness: 1})
	if day != tcell.NewRGBColor(70, 110, 160) {
		t.Fatalf("unexpected daylight %v", day)
	}
	dim := skyColour(session.Status{Brightness: 0.5})
	if dim != tcell.NewRGBColor(35, 55, 80) {
		t.Fatalf("unexpected dimmed sky %v", dim)
	}
	flash := skyColour(session.Status{Brightness: 1, Tint: weather.Colour{R: 1, G: 1, B: 1}})
	if flash != tcell.NewRGBColor(255, 255, 255) {
		t.Fatalf("expected a white flash, got %v", flash)
	}
}

func TestDrawListsEvents(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	a.execute(ctx, "add acid shower 3 2 1 0.5")
	a.execute(ctx, "help")

	lines := a.lines(a.sess.Status())
	if len(lines) != 4 || !strings.Contains(lines[3], "acid shower") || !strings.Contains(lines[3], "in  3h") {
		t.Fatalf("unexpected lines %q", lines)
	}
	a.draw()
}
