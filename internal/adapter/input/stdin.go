package input

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/toastui/internal/toast"
)

// StdinAdapter reads toast requests from standard input.
type StdinAdapter struct {
	reader io.Reader
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter() *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader) *StdinAdapter {
	return &StdinAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Read parses the whole input. Supports two formats:
//  1. a JSON array of request objects
//  2. one request per line, either a JSON object or a bare message
//
// Blank lines are skipped.
func (a *StdinAdapter) Read(ctx context.Context) ([]Request, error) {
	scanner := bufio.NewScanner(a.reader)
	const maxSize = 10 * 1024 * 1024 // 10MB max
	scanner.Buffer(make([]byte, 64*1024), maxSize)

	var lines []string
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to read stdin",
			Err:     err,
		}
	}

	data := strings.TrimSpace(strings.Join(lines, "\n"))
	if data == "" {
		return nil, nil
	}
	// Plain lines such as "[ci] build passed" also start with a bracket.
	if strings.HasPrefix(data, "[") && json.Valid([]byte(data)) {
		return parseJSONArray([]byte(data))
	}

	var requests []Request
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "{") {
			requests = append(requests, Request{Message: sanitizeString(line)})
			continue
		}
		var entry stdinEntry
		if err := decodeStrict([]byte(line), &entry); err != nil {
			return nil, &AdapterError{Source: "stdin", Line: i + 1, Message: "invalid JSON", Err: err}
		}
		req, err := entry.request()
		if err != nil {
			return nil, &AdapterError{Source: "stdin", Line: i + 1, Message: "invalid request", Err: err}
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func parseJSONArray(data []byte) ([]Request, error) {
	var entries []stdinEntry
	if err := decodeStrict(data, &entries); err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to parse JSON input",
			Err:     err,
		}
	}

	requests := make([]Request, 0, len(entries))
	for i, entry := range entries {
		req, err := entry.request()
		if err != nil {
			return nil, &AdapterError{Source: "stdin", Message: fmt.Sprintf("entry %d", i+1), Err: err}
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// stdinEntry is a request in JSON form. Unset fields fall back to the
// notifier defaults.
type stdinEntry struct {
	Message   string          `json:"message"`
	Type      *string         `json:"type,omitempty"`
	Position  *string         `json:"position,omitempty"`
	Duration  json.RawMessage `json:"duration,omitempty"`
	Closable  *bool           `json:"closable,omitempty"`
	Animation *string         `json:"animation,omitempty"`
	Theme     *string         `json:"theme,omitempty"`
	Icon      *string         `json:"icon,omitempty"`
}

func (e stdinEntry) request() (Request, error) {
	req := Request{Message: sanitizeString(e.Message)}
	p := &req.Options
	if e.Type != nil {
		v, err := toast.ParseEnum("type", *e.Type, toast.ValidTypes())
		if err != nil {
			return Request{}, err
		}
		p.Type = &v
	}
	if e.Position != nil {
		v, err := toast.ParseEnum("position", *e.Position, toast.ValidPositions())
		if err != nil {
			return Request{}, err
		}
		p.Position = &v
	}
	if len(e.Duration) > 0 {
		d, err := parseDuration(e.Duration)
		if err != nil {
			return Request{}, err
		}
		p.Duration = &d
	}
	p.Closable = e.Closable
	if e.Animation != nil {
		v, err := toast.ParseEnum("animation", *e.Animation, toast.ValidAnimations())
		if err != nil {
			return Request{}, err
		}
		p.Animation = &v
	}
	if e.Theme != nil {
		v, err := toast.ParseEnum("theme", *e.Theme, toast.ValidThemes())
		if err != nil {
			return Request{}, err
		}
		p.Theme = &v
	}
	p.Icon = e.Icon
	return req, nil
}

// parseDuration accepts integer milliseconds or a Go duration string.
func parseDuration(raw json.RawMessage) (time.Duration, error) {
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("duration must be milliseconds or a string: %s", raw)
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Millisecond, nil
	}
	return 0, fmt.Errorf("invalid duration: %q", s)
}

// sanitizeString replaces control characters other than newline and tab.
func sanitizeString(s string) string {
	var result strings.Builder
	for _, r := range s {
		if r < 32 && r != '\n' && r != '\t' {
			result.WriteRune(' ')
		} else {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
