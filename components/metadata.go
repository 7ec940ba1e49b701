package components

import "fmt"

// FieldDescriptor describes a readout field for UI display.
type FieldDescriptor struct {
	ID     string // Unique identifier
	Label  string // Display name
	Format string // Printf format (e.g., "%.2f")
	Group  string // Logical grouping
}

// ObjectFields lists the readout fields for a selected object, in display order.
func ObjectFields() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "id", Label: "Object", Format: "#%d", Group: "identity"},
		{ID: "archetype", Label: "Shape", Format: "%s", Group: "identity"},
		{ID: "position", Label: "Position", Format: "(%.2f, %.2f, %.2f)", Group: "motion"},
		{ID: "speed", Label: "Speed", Format: "%.2f", Group: "motion"},
		{ID: "spin", Label: "Spin", Format: "%.2f", Group: "motion"},
		{ID: "sleeping", Label: "Sleeping", Format: "%t", Group: "motion"},
		{ID: "nudges", Label: "Nudges", Format: "%d", Group: "interaction"},
	}
}

// FormatObjectField renders one field for the given entity data.
func FormatObjectField(f FieldDescriptor, shape Shape, tr Transform, m Motion, body Body) string {
	switch f.ID {
	case "id":
		return fmt.Sprintf(f.Format, shape.ObjectID)
	case "archetype":
		if shape.Archetype == nil {
			return "-"
		}
		return fmt.Sprintf(f.Format, shape.Archetype.Name)
	case "position":
		return fmt.Sprintf(f.Format, tr.Position.X(), tr.Position.Y(), tr.Position.Z())
	case "speed":
		return fmt.Sprintf(f.Format, m.LinearVelocity.Len())
	case "spin":
		return fmt.Sprintf(f.Format, m.AngularVelocity.Len())
	case "sleeping":
		return fmt.Sprintf(f.Format, m.Sleeping)
	case "nudges":
		if body.Ctrl == nil {
			return "-"
		}
		return fmt.Sprintf(f.Format, body.Ctrl.Nudges())
	}
	return ""
}
