package toast

// CloseReason records why a toast started closing.
type CloseReason int

const (
	ReasonNone CloseReason = iota
	// ReasonExpired means the auto-dismiss timer fired.
	ReasonExpired
	// ReasonDismissed means the close button was used.
	ReasonDismissed
	// ReasonClosed means the disposer was called.
	ReasonClosed
	// ReasonCloseAll means CloseAll was called.
	ReasonCloseAll
	// ReasonDestroyed means the notifier was torn down.
	ReasonDestroyed
)

// String returns the string representation of the reason.
func (r CloseReason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonDismissed:
		return "dismissed"
	case ReasonClosed:
		return "closed"
	case ReasonCloseAll:
		return "close-all"
	case ReasonDestroyed:
		return "destroyed"
	default:
		return "none"
	}
}

// State is a toast's lifecycle state.
type State int

const (
	StateMounted State = iota
	StatePaused
	StateClosing
	StateRemoved
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateMounted:
		return "mounted"
	case StatePaused:
		return "paused"
	case StateClosing:
		return "closing"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}
