package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/toastui/internal/store"
	"github.com/jmylchreest/toastui/internal/toast"
)

// DmenuFormatter formats entries one per line for dmenu/rofi/fuzzel.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	f := &DmenuFormatter{opts: opts}
	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs(opts.now)).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}
	return f
}

// Format writes entries in dmenu format (one per line).
func (f *DmenuFormatter) Format(w io.Writer, entries []store.Entry) error {
	now := f.opts.now()
	for i := range entries {
		line := f.formatLine(i+1, &entries[i], now)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (f *DmenuFormatter) formatLine(index int, e *store.Entry, now time.Time) string {
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, newTemplateData(index, e, now)); err == nil {
			return buf.String()
		}
	}

	// Default format: index | time | type | message
	var parts []string
	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	if f.opts.ShowIndex {
		parts = append(parts, strconv.Itoa(index))
	}
	if f.opts.ShowTime {
		parts = append(parts, relativeTime(e.ShownAt, now))
	}
	if f.opts.ShowType && e.Type != "" {
		parts = append(parts, e.Type)
	}
	parts = append(parts, sanitizeMessage(e.Message, f.opts.MessageMaxLen, false))

	return strings.Join(parts, sep)
}

// templateData provides data for custom templates.
type templateData struct {
	Index        int
	Entry        *store.Entry
	RelativeTime string
}

func newTemplateData(index int, e *store.Entry, now time.Time) templateData {
	return templateData{Index: index, Entry: e, RelativeTime: relativeTime(e.ShownAt, now)}
}

// templateFuncs returns template helper functions.
func templateFuncs(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			return truncate(s, maxLen)
		},
		"reltime": func(t time.Time) string {
			return relativeTime(t, now())
		},
		"ago": func(t time.Time) string {
			return humanize.RelTime(t, now(), "ago", "from now")
		},
		"typeIcon": func(t string) string {
			return toast.IconFor(toast.Config{Type: toast.Type(t)})
		},
	}
}

// relativeTime returns a compact relative time such as "5m" or "2d".
func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw", int(d.Hours()/24/7))
	}
}

// truncate shortens s to maxLen display cells, marking the cut with "...".
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || ansi.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return ansi.Truncate(s, maxLen, "")
	}
	return ansi.Truncate(s, maxLen, "...")
}

// sanitizeMessage cleans up message text for single-line display.
func sanitizeMessage(msg string, maxLen int, includeNewline bool) string {
	if !includeNewline {
		msg = strings.ReplaceAll(msg, "\n", " ")
		msg = strings.ReplaceAll(msg, "\r", "")
	}

	for strings.Contains(msg, "  ") {
		msg = strings.ReplaceAll(msg, "  ", " ")
	}

	return truncate(strings.TrimSpace(msg), maxLen)
}
