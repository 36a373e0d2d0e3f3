package dom

import (
	"strconv"
	"time"
)

// widthState tracks an element's width as a percentage of its parent.
type widthState struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
}

func (w *widthState) at(now time.Time) float64 {
	if w.duration <= 0 {
		return w.to
	}
	elapsed := now.Sub(w.start)
	if elapsed <= 0 {
		return w.from
	}
	if elapsed >= w.duration {
		return w.to
	}
	frac := float64(elapsed) / float64(w.duration)
	return w.from + (w.to-w.from)*frac
}

// SetWidth fixes the width at pct percent of the parent with no transition.
func (e *Element) SetWidth(pct float64) {
	e.width = &widthState{from: pct, to: pct}
	e.SetStyle("width", formatPercent(pct))
	e.SetStyle("transition", "none")
}

// TransitionWidth animates the width linearly from one percentage to another
// over d, starting at now.
func (e *Element) TransitionWidth(from, to float64, d time.Duration, now time.Time) {
	e.width = &widthState{from: from, to: to, start: now, duration: d}
	e.SetStyle("width", formatPercent(to))
	e.SetStyle("transition", "width "+strconv.FormatInt(d.Milliseconds(), 10)+"ms linear")
}

// RenderedWidth returns the width shown at now as a percentage of the parent.
// Elements without an explicit width fill their parent.
func (e *Element) RenderedWidth(now time.Time) float64 {
	if e.width == nil {
		return 100
	}
	return e.width.at(now)
}

// FreezeWidth snapshots the rendered width at now, disables the transition
// and returns the frozen percentage.
func (e *Element) FreezeWidth(now time.Time) float64 {
	pct := e.RenderedWidth(now)
	e.SetWidth(pct)
	return pct
}

func formatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}
