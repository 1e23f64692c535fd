package canvas

// PointerAction is a phase of mouse or touch input.
type PointerAction int

const (
	PointerDown PointerAction = iota
	PointerMove
	PointerUp
	PointerLeave
)

// HandleMouse feeds one mouse event to the stroke calls.
func (s *Surface) HandleMouse(action PointerAction, p Point) {
	switch action {
	case PointerDown:
		s.BeginStroke(p)
	case PointerMove:
		s.ExtendStroke(p)
	case PointerUp, PointerLeave:
		s.EndStroke()
	}
}

// HandleTouch feeds one touch event to the stroke calls. Only the first
// contact point is honoured; extra fingers are ignored.
func (s *Surface) HandleTouch(action PointerAction, touches []Point) {
	switch action {
	case PointerDown, PointerMove:
		if len(touches) == 0 {
			return
		}
		s.HandleMouse(action, touches[0])
	default:
		s.EndStroke()
	}
}
