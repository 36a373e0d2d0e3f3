package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/toastui/internal/store"
)

func TestSort_Empty(t *testing.T) {
	var entries []store.Entry
	Sort(entries, DefaultSortOptions())
	assert.Empty(t, entries)
}

func TestSort(t *testing.T) {
	tests := []struct {
		name     string
		opts     SortOptions
		expected []string
	}{
		{"shown desc", SortOptions{Field: SortByShown, Order: SortDesc}, []string{"01A", "01B", "01C"}},
		{"shown asc", SortOptions{Field: SortByShown, Order: SortAsc}, []string{"01C", "01B", "01A"}},
		{"type asc", SortOptions{Field: SortByType, Order: SortAsc}, []string{"01C", "01A", "01B"}},
		{"reason desc", SortOptions{Field: SortByReason, Order: SortDesc}, []string{"01A", "01B", "01C"}},
		{"visible asc", SortOptions{Field: SortByVisible, Order: SortAsc}, []string{"01B", "01A", "01C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := historyEntries()
			Sort(entries, tt.opts)
			assert.Equal(t, tt.expected, ids(entries))
		})
	}
}

func TestSort_Stable(t *testing.T) {
	entries := []store.Entry{
		{ID: "a", Type: "info"},
		{ID: "b", Type: "error"},
		{ID: "c", Type: "info"},
	}
	Sort(entries, SortOptions{Field: SortByType, Order: SortAsc})
	assert.Equal(t, []string{"b", "a", "c"}, ids(entries))
}

func TestDefaultSortOptions(t *testing.T) {
	opts := DefaultSortOptions()
	assert.Equal(t, SortByShown, opts.Field)
	assert.Equal(t, SortDesc, opts.Order)
}

func TestParseSortField(t *testing.T) {
	tests := map[string]SortField{
		"shown":    SortByShown,
		"":         SortByShown,
		"bogus":    SortByShown,
		"TYPE":     SortByType,
		"t":        SortByType,
		"reason":   SortByReason,
		"duration": SortByVisible,
		"v":        SortByVisible,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseSortField(in), in)
	}
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortAsc, ParseSortOrder("asc"))
	assert.Equal(t, SortAsc, ParseSortOrder("Ascending"))
	assert.Equal(t, SortDesc, ParseSortOrder("desc"))
	assert.Equal(t, SortDesc, ParseSortOrder(""))
}
