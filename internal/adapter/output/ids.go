package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/toastui/internal/store"
)

// IDsFormatter outputs just the toast IDs, one per line.
// Useful for piping to other commands.
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes toast IDs to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, entries []store.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.ID); err != nil {
			return err
		}
	}
	return nil
}
