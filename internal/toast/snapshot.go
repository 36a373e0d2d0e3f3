package toast

import (
	"time"

	"github.com/jmylchreest/toastui/internal/dom"
)

// View is a read-only picture of one toast for renderers.
type View struct {
	ID        string
	Message   string
	Icon      string
	Type      Type
	Theme     Theme
	Animation Animation
	Closable  bool
	State     State
	Reason    CloseReason

	// Progress is the rendered width of the progress bar in percent.
	// HasProgress is false when the toast has no auto-dismiss.
	Progress    float64
	HasProgress bool

	// Remaining is the time until auto-dismiss, frozen while paused.
	Remaining time.Duration

	Element     *dom.Element
	CloseButton *dom.Element
}

// ContainerView lists the toasts of one position, oldest first.
type ContainerView struct {
	Position Position
	Toasts   []View
}

// Snapshot returns the containers that exist, in layout order.
func (n *Notifier) Snapshot() []ContainerView {
	now := n.sched.Now()
	containers := n.registry.Containers()
	out := make([]ContainerView, 0, len(containers))
	for _, c := range containers {
		cv := ContainerView{Position: c.position, Toasts: make([]View, 0, len(c.toasts))}
		for _, t := range c.toasts {
			cv.Toasts = append(cv.Toasts, t.view(now))
		}
		out = append(out, cv)
	}
	return out
}

// Render serializes the page, or returns "" without a document.
func (n *Notifier) Render() string {
	if n.doc == nil {
		return ""
	}
	return n.doc.Render()
}

func (t *Toast) view(now time.Time) View {
	v := View{
		ID:          t.id,
		Message:     t.message,
		Icon:        IconFor(t.cfg),
		Type:        t.cfg.Type,
		Theme:       t.cfg.Theme,
		Animation:   t.cfg.Animation,
		Closable:    t.cfg.Closable,
		State:       t.state,
		Reason:      t.reason,
		Remaining:   t.timeLeft(now),
		Element:     t.el,
		CloseButton: t.closeBtn,
	}
	if t.progress != nil {
		v.HasProgress = true
		v.Progress = t.progress.RenderedWidth(now)
	}
	return v
}

func (t *Toast) timeLeft(now time.Time) time.Duration {
	if t.timer == nil {
		if t.state == StatePaused {
			return t.remaining
		}
		return 0
	}
	return max(0, t.remaining-now.Sub(t.startedAt))
}
