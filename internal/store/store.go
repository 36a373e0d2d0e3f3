// Package store keeps the history of toasts that have left the page.
package store

import (
	"slices"
	"time"

	"github.com/jmylchreest/toastui/internal/toast"
)

// Entry is one closed toast.
type Entry struct {
	ID       string    `json:"id" yaml:"id"`
	Message  string    `json:"message" yaml:"message"`
	Type     string    `json:"type" yaml:"type"`
	Position string    `json:"position" yaml:"position"`
	Theme    string    `json:"theme" yaml:"theme"`
	Reason   string    `json:"reason" yaml:"reason"`
	ShownAt  time.Time `json:"shown_at" yaml:"shown_at"`
	ClosedAt time.Time `json:"closed_at" yaml:"closed_at"`
}

// EntryFromToast records a removed toast.
func EntryFromToast(t *toast.Toast) Entry {
	cfg := t.Config()
	return Entry{
		ID:       t.ID(),
		Message:  t.Message(),
		Type:     string(cfg.Type),
		Position: string(cfg.Position),
		Theme:    string(cfg.Theme),
		Reason:   t.Reason().String(),
		ShownAt:  t.MountedAt(),
		ClosedAt: t.ClosedAt(),
	}
}

// Visible returns how long the toast was on screen before closing.
func (e Entry) Visible() time.Duration {
	if e.ClosedAt.Before(e.ShownAt) {
		return 0
	}
	return e.ClosedAt.Sub(e.ShownAt)
}

// FilterOptions selects history entries.
type FilterOptions struct {
	Since time.Duration // entries shown within the window, 0 = all
	Type  string        // exact type match, empty = any
	Limit int           // newest N, 0 = unlimited
}

// Filter returns matching entries, newest first. now anchors Since.
func Filter(entries []Entry, opts FilterOptions, now time.Time) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if opts.Since > 0 && e.ShownAt.Before(now.Add(-opts.Since)) {
			continue
		}
		if opts.Type != "" && e.Type != opts.Type {
			continue
		}
		out = append(out, e)
	}

	slices.SortStableFunc(out, func(a, b Entry) int {
		return b.ShownAt.Compare(a.ShownAt)
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}
