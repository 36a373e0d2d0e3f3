// Package input reads toast requests from outside sources.
package input

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/jmylchreest/toastui/internal/toast"
)

// Request is one toast to show.
type Request struct {
	Message string
	Options toast.Partial
}

// Source yields toast requests.
type Source interface {
	// Name returns the source identifier (e.g., "stdin").
	Name() string

	// Read fetches the pending requests.
	Read(ctx context.Context) ([]Request, error)
}

// NewSource creates a Source by name. Only "stdin" and "-" are known.
func NewSource(name string) (Source, error) {
	return NewSourceWithReader(name, os.Stdin)
}

// NewSourceWithReader is NewSource reading from r instead of os.Stdin.
func NewSourceWithReader(name string, r io.Reader) (Source, error) {
	switch name {
	case "", "stdin", "-":
		return NewStdinAdapterWithReader(r), nil
	default:
		return nil, &AdapterError{
			Source:  name,
			Message: "unknown input source",
		}
	}
}

// AdapterError represents an input-related error.
type AdapterError struct {
	Source  string
	Line    int
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	msg := e.Source + ": " + e.Message
	if e.Line > 0 {
		msg = e.Source + ": line " + strconv.Itoa(e.Line) + ": " + e.Message
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
