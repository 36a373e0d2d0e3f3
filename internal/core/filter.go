// Package core provides filtering, sorting, and lookup logic over toast history.
package core

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/toastui/internal/store"
	"github.com/jmylchreest/toastui/internal/toast"
)

// FilterOp represents a comparison operator.
type FilterOp string

const (
	FilterOpEqual     FilterOp = "="  // Exact match
	FilterOpNotEqual  FilterOp = "!=" // Not equal
	FilterOpContains  FilterOp = "~"  // Contains substring
	FilterOpRegex     FilterOp = "~=" // Regex match
	FilterOpGreater   FilterOp = ">"  // Greater than
	FilterOpLess      FilterOp = "<"  // Less than
	FilterOpGreaterEq FilterOp = ">=" // Greater than or equal
	FilterOpLessEq    FilterOp = "<=" // Less than or equal
)

// FilterCondition represents a single filter condition.
type FilterCondition struct {
	Field    string   // id, message, type, position, theme, reason, shown, visible
	Operator FilterOp // Comparison operator
	Value    string   // Value to compare against

	regex    *regexp.Regexp // compiled for ~=
	cutoff   time.Time      // shown: now minus the parsed age
	duration time.Duration  // visible
}

// FilterExpr represents a compound filter expression.
// Multiple conditions are ANDed together.
type FilterExpr struct {
	Conditions []FilterCondition
}

// ParseDuration parses a duration string with extended formats.
// Supports: 48h, 7d, 1w, 0 (all time)
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if s == "0" || s == "" {
		return 0, nil
	}

	if daysStr, found := strings.CutSuffix(s, "d"); found {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	if weeksStr, found := strings.CutSuffix(s, "w"); found {
		weeks, err := strconv.Atoi(weeksStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(weeks) * 7 * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}

// ParseType parses a toast type name. Empty input is accepted and means any.
func ParseType(s string) (toast.Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	if slices.Contains(toast.ValidTypes(), toast.Type(s)) {
		return toast.Type(s), nil
	}
	return "", fmt.Errorf("invalid type: %s (use success, error, warning, info, or default)", s)
}

// ParseFilter parses a filter expression relative to the current time.
func ParseFilter(expr string) (*FilterExpr, error) {
	return ParseFilterAt(expr, time.Now())
}

// ParseFilterAt parses a filter expression string into a FilterExpr.
// Format: "field=value,field2~value2,field3>value3"
// Multiple conditions are comma-separated and ANDed together.
//
// Supported fields: id, message, type, position, theme, reason, shown, visible
// Supported operators: = (equal), != (not equal), ~ (contains), ~= (regex), >, <, >=, <=
//
// Examples:
//   - "type=error" - error toasts only
//   - "message~deploy" - message contains "deploy"
//   - "reason!=expired" - toasts someone closed
//   - "shown>1h" - toasts shown in the last hour
//   - "visible<2s" - toasts gone within two seconds
func ParseFilterAt(expr string, now time.Time) (*FilterExpr, error) {
	if expr == "" {
		return &FilterExpr{}, nil
	}

	filter := &FilterExpr{
		Conditions: make([]FilterCondition, 0),
	}

	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		cond, err := parseCondition(part, now)
		if err != nil {
			return nil, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}

	return filter, nil
}

// parseCondition parses a single condition like "type=error" or "message~disk"
func parseCondition(s string, now time.Time) (FilterCondition, error) {
	// Longest operators first so "!=" is not read as "=".
	operators := []FilterOp{
		FilterOpNotEqual,
		FilterOpGreaterEq,
		FilterOpLessEq,
		FilterOpRegex,
		FilterOpEqual,
		FilterOpContains,
		FilterOpGreater,
		FilterOpLess,
	}

	for _, op := range operators {
		idx := strings.Index(s, string(op))
		if idx > 0 {
			cond := FilterCondition{
				Field:    strings.ToLower(strings.TrimSpace(s[:idx])),
				Operator: op,
				Value:    strings.TrimSpace(s[idx+len(op):]),
			}
			if err := cond.init(now); err != nil {
				return FilterCondition{}, err
			}
			return cond, nil
		}
	}

	return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
}

// init pre-parses and validates the condition value.
func (c *FilterCondition) init(now time.Time) error {
	switch c.Field {
	case "id":
	case "message", "msg", "body":
		c.Field = "message"
	case "type", "level":
		c.Field = "type"
		if c.Operator == FilterOpEqual || c.Operator == FilterOpNotEqual {
			t, err := ParseType(c.Value)
			if err != nil {
				return err
			}
			c.Value = string(t)
		}
	case "position", "pos":
		c.Field = "position"
	case "theme":
	case "reason":
	case "shown", "time", "ts":
		c.Field = "shown"
		age, err := ParseDuration(c.Value)
		if err != nil {
			return fmt.Errorf("invalid shown value: %w", err)
		}
		c.cutoff = now.Add(-age)
	case "visible", "duration":
		c.Field = "visible"
		d, err := time.ParseDuration(c.Value)
		if err != nil {
			return fmt.Errorf("invalid visible value: %w", err)
		}
		c.duration = d
	default:
		return fmt.Errorf("unknown filter field: %s", c.Field)
	}

	if c.Operator == FilterOpRegex {
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}

	return nil
}

// Match tests if an entry matches the filter expression.
// All conditions must match (AND logic).
func (f *FilterExpr) Match(e store.Entry) bool {
	for _, cond := range f.Conditions {
		if !cond.Match(e) {
			return false
		}
	}
	return true
}

// Match tests if an entry matches this single condition.
func (c *FilterCondition) Match(e store.Entry) bool {
	switch c.Field {
	case "id":
		return c.matchString(e.ID)
	case "message":
		return c.matchString(e.Message)
	case "type":
		return c.matchString(e.Type)
	case "position":
		return c.matchString(e.Position)
	case "theme":
		return c.matchString(e.Theme)
	case "reason":
		return c.matchString(e.Reason)
	case "shown":
		return c.matchTimestamp(e.ShownAt)
	case "visible":
		return c.matchDuration(e.Visible())
	default:
		return false
	}
}

func (c *FilterCondition) matchString(fieldValue string) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.Value
	case FilterOpNotEqual:
		return fieldValue != c.Value
	case FilterOpContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(fieldValue)
	default:
		return false
	}
}

// matchTimestamp compares against the cutoff: ">" means newer than.
func (c *FilterCondition) matchTimestamp(fieldValue time.Time) bool {
	switch c.Operator {
	case FilterOpGreater:
		return fieldValue.After(c.cutoff)
	case FilterOpLess:
		return fieldValue.Before(c.cutoff)
	case FilterOpGreaterEq:
		return !fieldValue.Before(c.cutoff)
	case FilterOpLessEq:
		return !fieldValue.After(c.cutoff)
	default:
		return false
	}
}

func (c *FilterCondition) matchDuration(d time.Duration) bool {
	switch c.Operator {
	case FilterOpEqual:
		return d == c.duration
	case FilterOpNotEqual:
		return d != c.duration
	case FilterOpGreater:
		return d > c.duration
	case FilterOpLess:
		return d < c.duration
	case FilterOpGreaterEq:
		return d >= c.duration
	case FilterOpLessEq:
		return d <= c.duration
	default:
		return false
	}
}

// FilterWithExpr filters entries using a filter expression.
func FilterWithExpr(entries []store.Entry, expr *FilterExpr) []store.Entry {
	if expr == nil || len(expr.Conditions) == 0 {
		return entries
	}

	result := make([]store.Entry, 0, len(entries))
	for _, e := range entries {
		if expr.Match(e) {
			result = append(result, e)
		}
	}
	return result
}
