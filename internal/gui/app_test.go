//go:build cgo

package gui

import (
	"context"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap/zaptest"

	"github.com/appengine-ltd/survive-it-weather/internal/config"
	"github.com/appengine-ltd/survive-it-weather/internal/parser"
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
	return New(sess, 30, logger)
}

func TestSubmittedCommandsRunOnDrain(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	a.submit("add snow 0 2 1 0.8")
	if len(a.sess.Status().Events) != 0 {
		t.Fatalf("commands should wait for drain")
	}
	a.drain(ctx)
	cur := a.sess.Status().Current
	if cur == nil || cur.Kind != weather.Blizzard {
		t.Fatalf("expected an active blizzard, got %+v", cur)
	}

	a.submit("hour")
	a.submit("quit")
	a.drain(ctx)
	if a.sess.Clock().Hour() != 7 || !a.quit || a.message != "Bye." {
		t.Fatalf("unexpected state: hour %d quit %v message %q", a.sess.Clock().Hour(), a.quit, a.message)
	}
}

func TestHotkeyCommandsParse(t *testing.T) {
	p := parser.New()
	for _, hk := range hotkeys {
		intent := p.Parse(parser.ParseContext{}, hk.command)
		if intent.Clarify != nil || intent.Verb == "" {
			t.Fatalf("hotkey command %q did not parse: %+v", hk.command, intent)
		}
	}
}

func TestIntentQueueDropsWhenFull(t *testing.T) {
	q := newIntentQueue(1)
	if !q.EnqueueIntent(parser.Intent{Verb: "hour"}) {
		t.Fatalf("first enqueue should succeed")
	}
	if q.EnqueueIntent(parser.Intent{Verb: "day"}) {
		t.Fatalf("second enqueue should be dropped")
	}
	got, ok := q.Dequeue()
	if !ok || got.Verb != "hour" {
		t.Fatalf("unexpected dequeue %+v %v", got, ok)
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatalf("queue should be empty")
	}

	var nilQueue *intentQueue
	if nilQueue.EnqueueIntent(parser.Intent{}) {
		t.Fatalf("nil queue should refuse intents")
	}
}

func TestSkyColorFollowsLighting(t *testing.T) {
	if got := skyColor(1, [3]float32{}); got != rl.NewColor(86, 128, 170, 255) {
		t.Fatalf("unexpected daylight %v", got)
	}
	if got := skyColor(0.5, [3]float32{}); got != rl.NewColor(43, 64, 85, 255) {
		t.Fatalf("unexpected dimmed sky %v", got)
	}
	if got := skyColor(1, [3]float32{1, 1, 1}); got != rl.NewColor(255, 255, 255, 255) {
		t.Fatalf("expected a white flash, got %v", got)
	}
}

func TestStateColor(t *testing.T) {
	if stateColor(weather.Active) != AppTheme.Accent {
		t.Fatalf("active events use the accent")
	}
	if stateColor(weather.Scheduled) == stateColor(weather.Active) {
		t.Fatalf("scheduled and active should differ")
	}
}
