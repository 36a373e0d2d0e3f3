package toast

import (
	"fmt"
	"time"

	"github.com/jmylchreest/toastui/internal/dom"
	"github.com/jmylchreest/toastui/internal/schedule"
)

// Toast is one mounted notification.
type Toast struct {
	n         *Notifier
	id        string
	message   string
	cfg       Config
	container *Container

	el       *dom.Element
	closeBtn *dom.Element
	progress *dom.Element

	state     State
	reason    CloseReason
	remaining time.Duration
	startedAt time.Time
	frozenAt  float64
	timer     schedule.Timer
	exitTimer schedule.Timer

	mountedAt time.Time
	closedAt  time.Time
}

// ID returns the toast identifier.
func (t *Toast) ID() string { return t.id }

// Message returns the message as given by the caller.
func (t *Toast) Message() string { return t.message }

// Config returns the resolved configuration.
func (t *Toast) Config() Config { return t.cfg }

// State returns the lifecycle state.
func (t *Toast) State() State { return t.state }

// Reason returns why the toast is closing, or ReasonNone.
func (t *Toast) Reason() CloseReason { return t.reason }

// Remaining returns the auto-dismiss time left as of the last start or
// pause of the timer.
func (t *Toast) Remaining() time.Duration { return t.remaining }

// MountedAt returns when the toast was shown.
func (t *Toast) MountedAt() time.Time { return t.mountedAt }

// ClosedAt returns when the toast started closing.
func (t *Toast) ClosedAt() time.Time { return t.closedAt }

// Element returns the toast's root element.
func (t *Toast) Element() *dom.Element { return t.el }

// CloseButton returns the close control, or nil if the toast is not closable.
func (t *Toast) CloseButton() *dom.Element { return t.closeBtn }

// ProgressBar returns the progress indicator, or nil without auto-dismiss.
func (t *Toast) ProgressBar() *dom.Element { return t.progress }

// Dismiss starts closing the toast. It is safe to call more than once.
func (t *Toast) Dismiss() {
	t.close(ReasonClosed)
}

func newToast(n *Notifier, id, message string, cfg Config) *Toast {
	t := &Toast{
		n:         n,
		id:        id,
		message:   message,
		cfg:       cfg,
		remaining: cfg.Duration,
	}
	t.build()
	return t
}

func (t *Toast) build() {
	doc := t.n.doc

	t.el = doc.CreateElement("div")
	t.el.SetClassName(fmt.Sprintf("%s %s %s animate-%s %s",
		classToast, t.cfg.Type, t.cfg.Theme, t.cfg.Animation, t.cfg.Position))
	t.el.SetAttribute("data-toast-id", t.id)

	icon := doc.CreateElement("span")
	icon.SetClassName(classIcon)
	icon.SetInnerHTML(EscapeHTML(IconFor(t.cfg)))
	t.el.AppendChild(icon)

	content := doc.CreateElement("div")
	content.SetClassName(classContent)
	content.SetInnerHTML(EscapeHTML(t.message))
	t.el.AppendChild(content)

	if t.cfg.Closable {
		t.closeBtn = doc.CreateElement("button")
		t.closeBtn.SetClassName(classClose)
		t.closeBtn.SetAttribute("type", "button")
		t.closeBtn.SetAttribute("aria-label", "Close notification")
		t.closeBtn.SetText("×")
		t.el.AppendChild(t.closeBtn)
	}

	if t.cfg.Duration > 0 {
		t.progress = doc.CreateElement("div")
		t.progress.SetClassName(classProgress)
		t.progress.SetWidth(100)
		t.el.AppendChild(t.progress)
	}
}

func (t *Toast) mount(c *Container) {
	t.container = c
	t.mountedAt = t.n.sched.Now()
	c.attach(t)

	t.el.AddEventListener(dom.EventClick, t.handleClick)
	if t.closeBtn != nil {
		t.closeBtn.AddEventListener(dom.EventClick, func(ev *dom.Event) {
			ev.StopPropagation()
			t.close(ReasonDismissed)
		})
	}

	if t.cfg.Duration > 0 {
		t.progress.TransitionWidth(100, 0, t.remaining, t.mountedAt)
		t.el.AddEventListener(dom.EventMouseEnter, func(*dom.Event) { t.pause() })
		t.el.AddEventListener(dom.EventMouseLeave, func(*dom.Event) { t.resume() })
		t.startTimer()
	}
}

func (t *Toast) handleClick(ev *dom.Event) {
	if t.cfg.OnClick == nil {
		return
	}
	if t.closeBtn != nil && t.closeBtn.Contains(ev.Target) {
		return
	}
	t.n.invoke("onClick", t, t.cfg.OnClick)
}

func (t *Toast) startTimer() {
	if t.remaining <= 0 {
		return
	}
	t.startedAt = t.n.sched.Now()
	t.timer = t.n.sched.AfterFunc(t.remaining, t.expire)
}

func (t *Toast) stopTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Toast) expire() {
	t.timer = nil
	t.remaining = 0
	t.close(ReasonExpired)
}

func (t *Toast) pause() {
	if t.state != StateMounted || t.timer == nil {
		return
	}
	t.stopTimer()
	now := t.n.sched.Now()
	t.remaining = max(0, t.remaining-now.Sub(t.startedAt))
	t.frozenAt = t.progress.FreezeWidth(now)
	t.state = StatePaused
	t.n.logger.Debug("toast paused", "id", t.id, "remaining", t.remaining)
}

func (t *Toast) resume() {
	if t.state != StatePaused {
		return
	}
	t.state = StateMounted
	if t.remaining <= 0 {
		t.close(ReasonExpired)
		return
	}
	t.progress.TransitionWidth(t.frozenAt, 0, t.remaining, t.n.sched.Now())
	t.startTimer()
	t.n.logger.Debug("toast resumed", "id", t.id, "remaining", t.remaining)
}

// close moves the toast into Closing. onClose runs before the exit class is
// applied, exactly once per toast.
func (t *Toast) close(reason CloseReason) {
	if t.state >= StateClosing {
		return
	}
	t.stopTimer()
	t.state = StateClosing
	t.reason = reason
	t.closedAt = t.n.sched.Now()

	t.n.invoke("onClose", t, t.cfg.OnClose)

	t.el.AddClass(classRemoving)
	t.exitTimer = t.n.sched.AfterFunc(t.n.exitDuration, t.remove)
	t.n.logger.Debug("toast closing", "id", t.id, "reason", reason)
}

func (t *Toast) remove() {
	if t.state == StateRemoved {
		return
	}
	if t.exitTimer != nil {
		t.exitTimer.Stop()
		t.exitTimer = nil
	}
	t.container.detach(t)
	t.state = StateRemoved
	t.n.forget(t)
}

// teardown closes the toast if needed and removes it without waiting for
// the exit animation.
func (t *Toast) teardown(reason CloseReason) {
	t.close(reason)
	t.remove()
}
