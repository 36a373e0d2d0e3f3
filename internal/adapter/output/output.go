// Package output renders toast history for the command line.
package output

import (
	"io"
	"time"

	"github.com/jmylchreest/toastui/internal/store"
)

// Formatter formats history entries for output.
type Formatter interface {
	// Format writes formatted entries to the writer.
	Format(w io.Writer, entries []store.Entry) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatDmenu FormatType = "dmenu"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatPlain FormatType = "plain"
	FormatIDs   FormatType = "ids"
)

// ValidFormats lists the accepted --format values.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatDmenu, FormatJSON, FormatYAML, FormatIDs}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatIDs:
		return NewIDsFormatter()
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template       string           // Custom template for dmenu/plain format
	ShowIndex      bool             // Show 1-based index prefix
	ShowTime       bool             // Show relative time
	ShowType       bool             // Show the toast type
	MessageMaxLen  int              // Maximum message width (0 = unlimited)
	Separator      string           // Field separator for dmenu format
	IncludeNewline bool             // Keep newlines in messages (default: replace with space)
	Now            func() time.Time // Clock for relative times, time.Now when nil
}

// DefaultFormatterOptions returns sensible defaults for dmenu output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:      true,
		ShowTime:       true,
		ShowType:       true,
		MessageMaxLen:  80,
		Separator:      " | ",
		IncludeNewline: false,
	}
}

func (o FormatterOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
