package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/appengine-ltd/survive-it-weather/internal/session"
)

const footer = "h hour  d day  1-4 add weather  s save  l load  : command  q quit"

// daylight is the sky colour at brightness 1.
var daylight = [3]float64{70, 110, 160}

// skyColour scales daylight by the brightness multiplier and adds the
// lighting tint on top.
func skyColour(st session.Status) tcell.Color {
	channel := func(base float64, tint float32) int32 {
		v := base*st.Brightness + float64(tint)*255
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return int32(v)
	}
	return tcell.NewRGBColor(
		channel(daylight[0], st.Tint.R),
		channel(daylight[1], st.Tint.G),
		channel(daylight[2], st.Tint.B),
	)
}

func (a *App) lines(st session.Status) []string {
	out := []string{session.FormatStatus(st), st.Gameplay.String(), ""}
	if len(st.Events) == 0 {
		out = append(out, "No weather on the way.")
	}
	for _, ev := range st.Events {
		marker := "  "
		if st.Current != nil && st.Current.ID == ev.ID {
			marker = "> "
		}
		out = append(out, fmt.Sprintf("%s%-12s %-9s in %2dh for %dh  p%d  sev %.2f",
			marker, ev.Label(), ev.State, ev.HoursUntil, ev.Duration, ev.Priority, ev.Severity))
	}
	return out
}

func (a *App) draw() {
	st := a.sess.Status()
	width, height := a.screen.Size()
	bg := tcell.StyleDefault.Background(skyColour(st)).Foreground(tcell.ColorWhite)
	bar := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

	// The first message line sits in the bar; the rest goes under the events.
	messageLines := strings.Split(a.message, "\n")
	prompt := messageLines[0]
	if a.inputMode {
		prompt = ":" + string(a.input) + "_"
	}
	body := a.lines(st)
	if len(messageLines) > 1 {
		body = append(append(body, ""), messageLines[1:]...)
	}

	a.screen.Fill(' ', bg)
	for y, line := range body {
		if y >= height-3 {
			break
		}
		drawText(a.screen, 1, y+1, width-2, line, bg)
	}
	drawText(a.screen, 0, height-2, width, prompt, bar)
	drawText(a.screen, 0, height-1, width, footer, bar)
	a.screen.Show()
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		if col >= width {
			return
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		screen.SetContent(x+col, y, ' ', nil, style)
	}
}
