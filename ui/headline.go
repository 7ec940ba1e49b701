package ui

import (
	"image/color"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TextRole selects the style of a laid-out text item.
type TextRole uint8

const (
	RoleBrand TextRole = iota
	RoleBadge
	RoleHeadline
	RolePrompt
	RoleTyped
	RoleCaret
	RoleFooter
)

// HeadlineData is the content of the headline overlay for one frame.
type HeadlineData struct {
	Brand    string
	Badge    string
	Headline string // lines separated by \n
	Prompt   string
	Typed    string
	Caret    bool
	Footer   []string
}

// HeadlineStyle holds sizes and colors for the headline overlay.
type HeadlineStyle struct {
	Margin       int32
	FontSize     int32
	HeadlineSize int32
	Opacity      float32
	TypedColor   color.RGBA
	AccentColor  color.RGBA
}

// TextItem is one positioned string.
type TextItem struct {
	Text string
	X, Y int32
	Size int32
	Role TextRole
}

// MeasureFunc returns the pixel width of text at a font size.
type MeasureFunc func(text string, size int32) int32

// LayoutHeadline positions the overlay text: brand top left, badge and
// headline below, the typing line under the headline and the footer at the
// bottom. The caret item is omitted while it blinks off.
func LayoutHeadline(data HeadlineData, style HeadlineStyle, screenH int32, measure MeasureFunc) []TextItem {
	m := style.Margin
	fs := style.FontSize
	var items []TextItem

	if data.Brand != "" {
		// Leave room for the accent dot.
		items = append(items, TextItem{Text: data.Brand, X: m + fs, Y: m, Size: fs, Role: RoleBrand})
	}

	y := m + fs*4
	if data.Badge != "" {
		items = append(items, TextItem{Text: data.Badge, X: m + fs/2, Y: y, Size: fs * 3 / 5, Role: RoleBadge})
		y += fs * 2
	}

	for _, line := range strings.Split(data.Headline, "\n") {
		if line == "" {
			continue
		}
		items = append(items, TextItem{Text: line, X: m, Y: y, Size: style.HeadlineSize, Role: RoleHeadline})
		y += style.HeadlineSize + style.HeadlineSize/8
	}
	y += fs

	x := m
	if data.Prompt != "" {
		items = append(items, TextItem{Text: data.Prompt, X: x, Y: y, Size: fs, Role: RolePrompt})
		x += measure(data.Prompt, fs)
	}
	if data.Typed != "" {
		items = append(items, TextItem{Text: data.Typed, X: x, Y: y, Size: fs, Role: RoleTyped})
		x += measure(data.Typed, fs)
	}
	if data.Caret {
		items = append(items, TextItem{Text: "|", X: x, Y: y, Size: fs, Role: RoleCaret})
	}

	fy := screenH - m - int32(len(data.Footer))*(fs*3/5+4)
	for _, line := range data.Footer {
		items = append(items, TextItem{Text: line, X: m, Y: fy, Size: fs * 3 / 5, Role: RoleFooter})
		fy += fs*3/5 + 4
	}
	return items
}

// HeadlineOverlay draws the static headline and the typing line.
type HeadlineOverlay struct {
	style HeadlineStyle
}

// NewHeadlineOverlay creates the overlay with the given style.
func NewHeadlineOverlay(style HeadlineStyle) *HeadlineOverlay {
	return &HeadlineOverlay{style: style}
}

func (h *HeadlineOverlay) colorFor(role TextRole) rl.Color {
	muted := rl.Color{R: 156, G: 163, B: 175, A: 255}
	switch role {
	case RoleTyped:
		return rl.Color{R: h.style.TypedColor.R, G: h.style.TypedColor.G, B: h.style.TypedColor.B, A: 255}
	case RolePrompt, RoleBadge:
		return muted
	case RoleFooter:
		return rl.Fade(muted, h.style.Opacity)
	default:
		return rl.White
	}
}

// Draw renders the overlay.
func (h *HeadlineOverlay) Draw(data HeadlineData, screenH int32) {
	items := LayoutHeadline(data, h.style, screenH, func(text string, size int32) int32 {
		return rl.MeasureText(text, size)
	})

	for _, it := range items {
		switch it.Role {
		case RoleBrand:
			r := float32(it.Size) / 4
			accent := rl.Color{R: h.style.AccentColor.R, G: h.style.AccentColor.G, B: h.style.AccentColor.B, A: 255}
			rl.DrawCircle(h.style.Margin+int32(r), it.Y+it.Size/2, r, accent)
		case RoleBadge:
			w := rl.MeasureText(it.Text, it.Size)
			pad := it.Size / 2
			rect := rl.Rectangle{
				X:      float32(h.style.Margin),
				Y:      float32(it.Y - pad),
				Width:  float32(w + it.Size + pad*2),
				Height: float32(it.Size + pad*2),
			}
			rl.DrawRectangleRec(rect, rl.Color{R: 30, G: 31, B: 32, A: 255})
			rl.DrawRectangleLinesEx(rect, 1, rl.Color{R: 55, G: 65, B: 81, A: 255})
			rl.DrawCircle(h.style.Margin+pad, it.Y+it.Size/2, float32(it.Size)/4, h.colorFor(RoleTyped))
			it.X += pad
		}
		rl.DrawText(it.Text, it.X, it.Y, it.Size, h.colorFor(it.Role))
	}
}
