//go:build cgo

// Package gui is the raylib window front-end. The sky behind the panels
// follows the weather lighting.
package gui

import (
	"context"
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/appengine-ltd/survive-it-weather/internal/parser"
	"github.com/appengine-ltd/survive-it-weather/internal/session"
)

const (
	windowWidth  = 1100
	windowHeight = 700
	maxInputLen  = 80
)

const footer = "H hour   D day   1-4 add weather   S save   L load   Enter command   ? help   Esc quit"

type App struct {
	sess   *session.Session
	parser *parser.Parser
	queue  *intentQueue
	logger *zap.Logger
	fps    int

	message   string
	input     string
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
		queue:   newIntentQueue(32),
		logger:  logger.Named("gui"),
		fps:     fps,
		message: "Press Enter to type a command, ? for help.",
	}
}

// Run opens the window and blocks until it is closed, the player quits or
// ctx ends.
func (a *App) Run(ctx context.Context) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Survive It: Weather")
	defer rl.CloseWindow()
	rl.SetExitKey(0)
	rl.SetTargetFPS(int32(a.fps))

	for !rl.WindowShouldClose() && !a.quit {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.update()
		a.drain(ctx)
		a.sess.Frame(float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		a.draw()
		rl.EndDrawing()
	}
	return nil
}

func (a *App) update() {
	if a.inputMode {
		a.updateInput()
		return
	}
	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		a.quit = true
	case rl.IsKeyPressed(rl.KeyEnter), shiftDown() && rl.IsKeyPressed(rl.KeySemicolon):
		a.inputMode = true
		a.input = ""
	case shiftDown() && rl.IsKeyPressed(rl.KeySlash):
		a.submit("help")
	default:
		for _, cmd := range a.pressedHotkeys() {
			a.submit(cmd)
		}
	}
}

func (a *App) updateInput() {
	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		a.inputMode = false
	case rl.IsKeyPressed(rl.KeyEnter):
		a.inputMode = false
		a.submit(a.input)
	default:
		captureTextInput(&a.input, maxInputLen)
	}
}

// submit parses line and queues it for the next drain.
func (a *App) submit(line string) {
	intent := a.parser.Parse(a.sess.ParseContext(), line)
	if !a.queue.EnqueueIntent(intent) {
		a.logger.Warn("command dropped, queue full", zap.String("input", line))
	}
}

func (a *App) drain(ctx context.Context) {
	for intent, ok := a.queue.Dequeue(); ok; intent, ok = a.queue.Dequeue() {
		res := a.sess.Execute(ctx, intent)
		a.logger.Debug("command", zap.String("input", intent.Raw), zap.String("verb", intent.Verb), zap.Bool("handled", res.Handled))
		a.message = res.Message
		if res.Quit {
			a.quit = true
		}
	}
}

func (a *App) draw() {
	st := a.sess.Status()
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	rl.ClearBackground(skyColor(st.Brightness, [3]float32{st.Tint.R, st.Tint.G, st.Tint.B}))

	header := rl.NewRectangle(spaceL, spaceL, w-2*spaceL, 92)
	drawPanel(header, fmt.Sprintf("Day %d  %02d:%02d", st.Day, st.Hour, st.Minute))
	drawLines(header, 40, smallSize, []string{session.FormatStatus(st), st.Gameplay.String()}, AppTheme.TextSecondary)

	top := header.Y + header.Height + spaceM
	bottom := h - 70
	eventsRect := rl.NewRectangle(spaceL, top, (w-3*spaceL)*0.6, bottom-top)
	drawPanel(eventsRect, "Forecast")
	a.drawEvents(eventsRect, st)

	msgRect := rl.NewRectangle(eventsRect.X+eventsRect.Width+spaceL, top, w-eventsRect.Width-3*spaceL, bottom-top)
	drawPanel(msgRect, "Log")
	y := int32(40)
	for _, line := range strings.Split(a.message, "\n") {
		wrapped := wrapText(line, smallSize, int32(msgRect.Width)-26)
		drawLines(msgRect, y, smallSize, wrapped, AppTheme.TextPrimary)
		y += int32(len(wrapped)) * (smallSize + 6)
	}

	bar := rl.NewRectangle(spaceL, h-58, w-2*spaceL, 40)
	rl.DrawRectangleRounded(bar, 0.2, 8, AppTheme.PanelRaised)
	if a.inputMode {
		rl.DrawText("> "+a.input+"_", int32(bar.X)+spaceM, int32(bar.Y)+10, bodySize, AppTheme.TextPrimary)
	} else {
		rl.DrawText(footer, int32(bar.X)+spaceM, int32(bar.Y)+12, smallSize, AppTheme.TextMuted)
	}
}

func (a *App) drawEvents(rect rl.Rectangle, st session.Status) {
	if len(st.Events) == 0 {
		drawLines(rect, 40, bodySize, []string{"No weather on the way."}, AppTheme.TextMuted)
		return
	}
	x := int32(rect.X) + 14
	for i, ev := range st.Events {
		y := int32(rect.Y) + 44 + int32(i)*(bodySize+10)
		if y > int32(rect.Y+rect.Height)-bodySize {
			break
		}
		if st.Current != nil && st.Current.ID == ev.ID {
			rl.DrawRectangle(x-6, y-4, int32(rect.Width)-16, bodySize+8, AppTheme.Active)
		}
		rl.DrawText(ev.Label(), x, y, bodySize, AppTheme.TextPrimary)
		rl.DrawText(ev.State.String(), x+150, y, bodySize, stateColor(ev.State))
		detail := fmt.Sprintf("in %dh for %dh   p%d   sev %.2f", ev.HoursUntil, ev.Duration, ev.Priority, ev.Severity)
		rl.DrawText(detail, x+270, y, bodySize, AppTheme.TextSecondary)
	}
}

func drawPanel(rect rl.Rectangle, title string) {
	rl.DrawRectangleRounded(rect, 0.04, 8, AppTheme.Panel)
	rl.DrawRectangleRoundedLinesEx(rect, 0.04, 8, 2, AppTheme.Border)
	rl.DrawText(title, int32(rect.X)+12, int32(rect.Y)+8, titleSize-4, AppTheme.Accent)
}

func drawLines(rect rl.Rectangle, y int32, size int32, lines []string, clr rl.Color) {
	for i, line := range lines {
		rl.DrawText(line, int32(rect.X)+14, int32(rect.Y)+y+int32(i)*(size+6), size, clr)
	}
}

func wrapText(text string, size int32, maxWidth int32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0, 4)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if rl.MeasureText(candidate, size) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

func captureTextInput(target *string, maxLen int) {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if ch >= 32 && ch <= 126 && len(*target) < maxLen {
			*target += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(*target) > 0 {
		*target = (*target)[:len(*target)-1]
	}
}
