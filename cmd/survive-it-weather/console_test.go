package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/appengine-ltd/survive-it-weather/internal/config"
	"github.com/appengine-ltd/survive-it-weather/internal/session"
)

func newTestConsole(t *testing.T, input string) (*console, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.SaveDir = t.TempDir()
	cfg.Seed = 3
	cfg.SecondsPerHour = 60
	sess, err := session.New(cfg, session.WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	t.Cleanup(func() { _ = sess.Close() })

	var out bytes.Buffer
	c := newConsole(sess, strings.NewReader(input), &out)
	return c, &out
}

func TestConsoleRunsCommandsUntilQuit(t *testing.T) {
	c, out := newTestConsole(t, "add storm 2 3 1 0.5\n\nevents\nquit\nhour\n")
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return start }

	if err := c.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Day 1 06:00", "storm", "Bye."} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if c.sess.Clock().Hour() != 6 {
		t.Fatalf("commands after quit should not run, clock at %02d", c.sess.Clock().Hour())
	}
}

func TestConsoleFeedsWallTime(t *testing.T) {
	c, _ := newTestConsole(t, "status\nstatus\n")
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time {
		now = now.Add(90 * time.Second)
		return now
	}

	if err := c.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	// 180s at 60s per hour.
	if c.sess.Clock().Hour() != 9 {
		t.Fatalf("expected 09:00, got %02d:%02d", c.sess.Clock().Hour(), c.sess.Clock().Minute())
	}
}

func TestConsoleStopsOnCancel(t *testing.T) {
	c, _ := newTestConsole(t, "hour\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.run(ctx); err == nil {
		t.Fatalf("expected the cancelled context to stop the loop")
	}
	if c.sess.Clock().Hour() != 6 {
		t.Fatalf("no command should run after cancel")
	}
}
