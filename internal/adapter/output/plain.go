package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/toastui/internal/store"
)

// PlainFormatter formats entries as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs(opts.now)).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}
	return f
}

// Format writes entries as plain text.
func (f *PlainFormatter) Format(w io.Writer, entries []store.Entry) error {
	now := f.opts.now()
	for i := range entries {
		if err := f.formatEntry(w, i+1, &entries[i], now); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatEntry(w io.Writer, index int, e *store.Entry, now time.Time) error {
	if f.template != nil {
		return f.template.Execute(w, newTemplateData(index, e, now))
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		fmt.Fprintf(&sb, "[%d] ", index)
	}
	if f.opts.ShowType && e.Type != "" {
		fmt.Fprintf(&sb, "<%s> ", e.Type)
	}

	sb.WriteString(sanitizeMessage(e.Message, f.opts.MessageMaxLen, f.opts.IncludeNewline))

	if f.opts.ShowTime && !e.ShownAt.IsZero() {
		fmt.Fprintf(&sb, " (%s)", humanize.RelTime(e.ShownAt, now, "ago", "from now"))
	}
	sb.WriteString("\n")

	if e.Reason != "" {
		fmt.Fprintf(&sb, "    %s after %s\n", e.Reason, e.Visible().Round(100*time.Millisecond))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatField outputs a specific field from an entry.
func FormatField(e *store.Entry, field string) string {
	switch strings.ToLower(field) {
	case "id":
		return e.ID
	case "type":
		return e.Type
	case "position", "pos":
		return e.Position
	case "theme":
		return e.Theme
	case "reason":
		return e.Reason
	case "shown", "shown_at":
		return e.ShownAt.Format(time.RFC3339)
	case "closed", "closed_at":
		return e.ClosedAt.Format(time.RFC3339)
	case "visible":
		return e.Visible().String()
	default:
		return e.Message
	}
}
