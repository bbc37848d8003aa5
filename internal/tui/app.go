// Package tui is the terminal front-end: a tcell screen whose background
// follows the weather lighting.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/clock"
	"github.com/appengine-ltd/survive-it-weather/internal/parser"
	"github.com/appengine-ltd/survive-it-weather/internal/session"
)

var errQuit = errors.New("quit")

// Hotkeys outside command mode. Digits add an active event of that kind.
var hotkeys = map[rune]string{
	'h': "hour",
	'd': "day",
	's': "save",
	'l': "load",
	'q': "quit",
	'1': "add storm 0 2 1 1.2",
	'2': "add blizzard 0 2 1 1.0",
	'3': "add solar surge 0 2 1 1.0",
	'4': "add acid shower 0 2 1 1.0",
}

type App struct {
	sess   *session.Session
	parser *parser.Parser
	logger *zap.Logger
	fps    int

	screen    tcell.Screen
	message   string
	input     []rune
	inputMode bool
	quit      bool
}

func New(sess *session.Session, fps int, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		sess:    sess,
		parser:  parser.New(),
		logger:  logger.Named("tui"),
		fps:     fps,
		message: "Press : to type a command, ? for help.",
	}
}

// Run takes over the terminal until the player quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	return a.run(ctx, screen)
}

func (a *App) run(ctx context.Context, screen tcell.Screen) error {
	a.screen = screen
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	err := clock.NewRunner(a.fps).Run(ctx, func(delta float64) error {
		a.drainEvents(ctx, events)
		if a.quit {
			return errQuit
		}
		a.sess.Frame(delta)
		a.draw()
		return nil
	})
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (a *App) drainEvents(ctx context.Context, events <-chan tcell.Event) {
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a.handleKey(ctx, ev.Key(), ev.Rune())
			case *tcell.EventResize:
				a.screen.Sync()
			}
		default:
			return
		}
	}
}

func (a *App) handleKey(ctx context.Context, key tcell.Key, r rune) {
	if key == tcell.KeyCtrlC {
		a.quit = true
		return
	}
	if a.inputMode {
		a.handleInputKey(ctx, key, r)
		return
	}
	switch {
	case key == tcell.KeyEscape:
		a.quit = true
	case key == tcell.KeyRune && r == ':':
		a.inputMode = true
		a.input = a.input[:0]
	case key == tcell.KeyRune && r == '?':
		a.execute(ctx, "help")
	case key == tcell.KeyRune:
		if cmd, ok := hotkeys[r]; ok {
			a.execute(ctx, cmd)
		}
	}
}

func (a *App) handleInputKey(ctx context.Context, key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape:
		a.inputMode = false
	case tcell.KeyEnter:
		a.inputMode = false
		a.execute(ctx, string(a.input))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
	case tcell.KeyRune:
		if len(a.input) < 80 {
			a.input = append(a.input, r)
		}
	}
}

func (a *App) execute(ctx context.Context, line string) {
	intent := a.parser.Parse(a.sess.ParseContext(), line)
	res := a.sess.Execute(ctx, intent)
	a.logger.Debug("command", zap.String("input", line), zap.String("verb", intent.Verb), zap.Bool("handled", res.Handled))
	a.message = res.Message
	if res.Quit {
		a.quit = true
	}
}
