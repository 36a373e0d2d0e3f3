package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/toastui/internal/store"
)

// LookupByID finds an entry by its full ID, or by a prefix that matches
// exactly one entry. Returns nil if nothing matches.
func LookupByID(entries []store.Entry, id string) (*store.Entry, error) {
	if id == "" {
		return nil, nil
	}
	var match *store.Entry
	for i := range entries {
		if strings.EqualFold(entries[i].ID, id) {
			return &entries[i], nil
		}
		if len(entries[i].ID) >= len(id) && strings.EqualFold(entries[i].ID[:len(id)], id) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous id prefix: %s", id)
			}
			match = &entries[i]
		}
	}
	return match, nil
}

// LookupByIndex finds an entry by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(entries []store.Entry, index int) *store.Entry {
	idx := index - 1
	if idx < 0 || idx >= len(entries) {
		return nil
	}
	return &entries[idx]
}

// Search finds entries whose message contains term, case-insensitively.
func Search(entries []store.Entry, term string) []store.Entry {
	if term == "" {
		return entries
	}

	term = strings.ToLower(term)
	var result []store.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Message), term) {
			result = append(result, e)
		}
	}
	return result
}

// UniqueTypes returns the sorted set of toast types present in entries.
func UniqueTypes(entries []store.Entry) []string {
	seen := make(map[string]bool)
	var types []string
	for _, e := range entries {
		if e.Type != "" && !seen[e.Type] {
			seen[e.Type] = true
			types = append(types, e.Type)
		}
	}
	slices.Sort(types)
	return types
}
