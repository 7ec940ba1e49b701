package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antigravity/components"
)

// InspectorData holds the hovered object's components.
type InspectorData struct {
	Shape     components.Shape
	Transform components.Transform
	Motion    components.Motion
	Body      components.Body
}

// Inspector renders the readout panel for one object.
type Inspector struct {
	renderer *Renderer
	fields   []components.FieldDescriptor
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		fields:   components.ObjectFields(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Height returns the panel height.
func (ins *Inspector) Height() int32 {
	t := ins.renderer.Theme
	groups := 0
	last := ""
	for _, f := range ins.fields {
		if f.Group != last {
			groups++
			last = f.Group
		}
	}
	rows := int32(len(ins.fields) + groups + 1)
	return rows*t.LineHeight + int32(groups)*4 + t.Padding*2
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	r.DrawPanel(ins.x, ins.y, ins.width, ins.Height())

	x := ins.x + padding
	y := ins.y + padding
	if data.Shape.Archetype != nil {
		y = r.DrawColorSwatch(x, y, "Color", rl.Color{
			R: data.Shape.Archetype.Color.R,
			G: data.Shape.Archetype.Color.G,
			B: data.Shape.Archetype.Color.B,
			A: 255,
		})
	} else {
		y += r.Theme.LineHeight
	}

	return r.DrawFields(x, y, ins.fields, func(f components.FieldDescriptor) string {
		return components.FormatObjectField(f, data.Shape, data.Transform, data.Motion, data.Body)
	})
}
