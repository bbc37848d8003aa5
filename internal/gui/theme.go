//go:build cgo

package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

type Theme struct {
	Background    rl.Color
	Panel         rl.Color
	PanelRaised   rl.Color
	Border        rl.Color
	Divider       rl.Color
	TextPrimary   rl.Color
	TextSecondary rl.Color
	TextMuted     rl.Color
	Accent        rl.Color
	Active        rl.Color
	Warning       rl.Color
	Danger        rl.Color
}

const (
	spaceS = 8
	spaceM = 12
	spaceL = 18
)

const (
	titleSize int32 = 26
	bodySize  int32 = 19
	smallSize int32 = 16
)

var AppTheme = Theme{
	Background:    rl.NewColor(0x14, 0x1A, 0x1F, 0xFF),
	Panel:         rl.NewColor(0x1C, 0x23, 0x29, 0xE6),
	PanelRaised:   rl.NewColor(0x21, 0x2A, 0x31, 0xF0),
	Border:        rl.NewColor(0x2E, 0x3A, 0x40, 0xFF),
	Divider:       rl.NewColor(0x26, 0x30, 0x38, 0xFF),
	TextPrimary:   rl.NewColor(0xE8, 0xE2, 0xD8, 0xFF),
	TextSecondary: rl.NewColor(0xA6, 0xAD, 0xB1, 0xFF),
	TextMuted:     rl.NewColor(0x7D, 0x85, 0x8A, 0xFF),
	Accent:        rl.NewColor(0xD4, 0x6A, 0x1E, 0xFF),
	Active:        rl.NewColor(0x2F, 0x5D, 0x42, 0xFF),
	Warning:       rl.NewColor(0xC1, 0x8B, 0x2F, 0xFF),
	Danger:        rl.NewColor(0xB8, 0x4A, 0x3A, 0xFF),
}

// daylight is the sky at brightness 1.
var daylight = [3]float64{86, 128, 170}

// skyColor scales daylight by brightness and adds the lighting tint.
func skyColor(brightness float64, tint [3]float32) rl.Color {
	channel := func(base float64, t float32) uint8 {
		v := base*brightness + float64(t)*255
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return rl.NewColor(
		channel(daylight[0], tint[0]),
		channel(daylight[1], tint[1]),
		channel(daylight[2], tint[2]),
		0xFF,
	)
}

func stateColor(state weather.State) rl.Color {
	switch state {
	case weather.Active:
		return AppTheme.Accent
	case weather.Expired:
		return AppTheme.TextMuted
	default:
		return AppTheme.TextSecondary
	}
}
