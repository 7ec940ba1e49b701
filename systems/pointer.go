package systems

// PointerEventKind is the kind of pointer interaction delivered to an object.
type PointerEventKind uint8

const (
	PointerEnter PointerEventKind = iota
	PointerLeave
	PointerClick
)

var pointerEventNames = map[PointerEventKind]string{
	PointerEnter: "enter",
	PointerLeave: "leave",
	PointerClick: "click",
}

func (k PointerEventKind) String() string {
	if n, ok := pointerEventNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParsePointerEventKind is the inverse of String.
func ParsePointerEventKind(s string) (PointerEventKind, bool) {
	for k, n := range pointerEventNames {
		if n == s {
			return k, true
		}
	}
	return 0, false
}

// PointerEvent targets one object by id.
type PointerEvent struct {
	Kind     PointerEventKind
	ObjectID int
}

// PointerRouter turns per-frame hit results into enter/leave/click events.
// At most one object is hovered at a time.
type PointerRouter struct {
	hovered  int
	hovering bool
}

// Move updates the hovered object from the latest hit test.
func (r *PointerRouter) Move(id int, hit bool) []PointerEvent {
	if hit && r.hovering && id == r.hovered {
		return nil
	}
	var events []PointerEvent
	if r.hovering {
		events = append(events, PointerEvent{Kind: PointerLeave, ObjectID: r.hovered})
		r.hovering = false
	}
	if hit {
		events = append(events, PointerEvent{Kind: PointerEnter, ObjectID: id})
		r.hovered, r.hovering = id, true
	}
	return events
}

// Click emits a click for the object under the pointer, if any.
func (r *PointerRouter) Click(id int, hit bool) []PointerEvent {
	events := r.Move(id, hit)
	if hit {
		events = append(events, PointerEvent{Kind: PointerClick, ObjectID: id})
	}
	return events
}

// Hovered returns the currently hovered object.
func (r *PointerRouter) Hovered() (int, bool) {
	return r.hovered, r.hovering
}
