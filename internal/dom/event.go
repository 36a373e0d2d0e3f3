package dom

// Event types used by the widget.
const (
	EventClick      = "click"
	EventMouseEnter = "mouseenter"
	EventMouseLeave = "mouseleave"
)

// Event is dispatched to an element and its listeners.
type Event struct {
	Type          string
	Target        *Element
	CurrentTarget *Element

	stopped bool
}

// NewEvent creates an event of the given type.
func NewEvent(eventType string) *Event {
	return &Event{Type: eventType}
}

// StopPropagation prevents the event from reaching further ancestors.
func (ev *Event) StopPropagation() { ev.stopped = true }

// Stopped reports whether StopPropagation was called.
func (ev *Event) Stopped() bool { return ev.stopped }

// Bubbles reports whether the event travels up the tree.
// Pointer enter/leave are delivered to the target only.
func (ev *Event) Bubbles() bool {
	return ev.Type != EventMouseEnter && ev.Type != EventMouseLeave
}
