package tui

import (
	"github.com/jmylchreest/toastui/internal/dom"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Executor runs a function on the goroutine that owns the notifier and waits
// for it.
type Executor interface {
	Do(f func()) bool
}

// Target selects the element of a toast that receives a pointer event.
type Target int

const (
	TargetBody Target = iota
	TargetClose
)

// Host is the view of a notifier the terminal UI works against.
type Host interface {
	Snapshot() []toast.ContainerView
	Dispatch(id string, target Target, eventType string) bool
	Dismiss(id string) bool
	CloseAll()
}

// LoopHost runs every call on the notifier's loop.
type LoopHost struct {
	exec     Executor
	notifier *toast.Notifier
}

// NewLoopHost creates a host for n whose calls run through exec.
func NewLoopHost(n *toast.Notifier, exec Executor) *LoopHost {
	return &LoopHost{exec: exec, notifier: n}
}

// Snapshot returns the notifier's containers.
func (h *LoopHost) Snapshot() []toast.ContainerView {
	var views []toast.ContainerView
	h.exec.Do(func() { views = h.notifier.Snapshot() })
	return views
}

// Dispatch delivers a pointer event to a toast. It reports whether the toast
// and its target element exist.
func (h *LoopHost) Dispatch(id string, target Target, eventType string) bool {
	var ok bool
	h.exec.Do(func() {
		t, found := h.notifier.Lookup(id)
		if !found {
			return
		}
		el := t.Element()
		if target == TargetClose {
			el = t.CloseButton()
		}
		if el == nil {
			return
		}
		el.Dispatch(dom.NewEvent(eventType))
		ok = true
	})
	return ok
}

// Dismiss closes a toast by id.
func (h *LoopHost) Dismiss(id string) bool {
	var ok bool
	h.exec.Do(func() { ok = h.notifier.Dismiss(id) })
	return ok
}

// CloseAll closes every toast.
func (h *LoopHost) CloseAll() {
	h.exec.Do(h.notifier.CloseAll)
}
