// Package ui draws the 2D layer over the scene: the headline overlay with
// the typing line, and the debug HUD, inspector and controls.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
	AnchorCenter
)

// AnchorPosition returns the top-left corner of a w×h panel anchored on a
// screenW×screenH screen with the given margin.
func AnchorPosition(anchor PanelAnchor, w, h, screenW, screenH, margin int32) (x, y int32) {
	switch anchor {
	case AnchorTopRight:
		return screenW - w - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - h - margin
	case AnchorBottomRight:
		return screenW - w - margin, screenH - h - margin
	case AnchorCenter:
		return (screenW - w) / 2, (screenH - h) / 2
	default:
		return margin, margin
	}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	MutedColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 28, G: 28, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 70, G: 70, B: 75, A: 255},
		SectionHeader:  rl.Color{R: 66, G: 133, B: 244, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		MutedColor:     rl.Color{R: 156, G: 163, B: 175, A: 255},
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 66, G: 133, B: 244, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
