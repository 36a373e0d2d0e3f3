package core

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jmylchreest/toastui/internal/store"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByShown   SortField = "shown"
	SortByType    SortField = "type"
	SortByReason  SortField = "reason"
	SortByVisible SortField = "visible"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions returns default sort options (newest first).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByShown,
		Order: SortDesc,
	}
}

// Sort sorts entries in place. Ties keep their relative order.
func Sort(entries []store.Entry, opts SortOptions) {
	if len(entries) == 0 {
		return
	}

	slices.SortStableFunc(entries, func(a, b store.Entry) int {
		var c int
		switch opts.Field {
		case SortByType:
			c = cmp.Compare(a.Type, b.Type)
		case SortByReason:
			c = cmp.Compare(a.Reason, b.Reason)
		case SortByVisible:
			c = cmp.Compare(a.Visible(), b.Visible())
		default:
			c = a.ShownAt.Compare(b.ShownAt)
		}
		if opts.Order == SortDesc {
			return -c
		}
		return c
	})
}

// ParseSortField parses a sort field string. Unknown values sort by time shown.
func ParseSortField(s string) SortField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "type", "t":
		return SortByType
	case "reason", "r":
		return SortByReason
	case "visible", "duration", "v":
		return SortByVisible
	default:
		return SortByShown
	}
}

// ParseSortOrder parses a sort order string. Unknown values sort descending.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "a":
		return SortAsc
	default:
		return SortDesc
	}
}
