package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/jmylchreest/toastui/internal/toast"
)

// SchemaVersion is the current history file schema version.
const SchemaVersion = 1

// maxLineSize bounds a single JSONL line.
const maxLineSize = 1024 * 1024

// ErrHistoryClosed is returned by operations on a closed History.
var ErrHistoryClosed = errors.New("history is closed")

// schemaHeader is the first line of the JSONL file.
type schemaHeader struct {
	SchemaVersion int   `json:"toastui_schema_version"`
	CreatedAt     int64 `json:"created_at"`
}

// History is an append-only JSONL log of closed toasts.
type History struct {
	mu     sync.Mutex
	logger *slog.Logger
	path   string
	file   *os.File
	keep   int
	count  int
	closed bool
}

// OpenHistory opens or creates the history file at path. When keep is
// positive the log is pruned to the newest keep entries whenever it grows
// to twice that size.
func OpenHistory(path string, keep int, logger *slog.Logger) (*History, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open history %s: %w", path, err)
	}

	h := &History{logger: logger, path: path, file: file, keep: keep}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.Size() == 0 {
		if err := writeHeader(file); err != nil {
			_ = file.Close()
			return nil, err
		}
	} else {
		entries, err := readEntries(file)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		h.count = len(entries)
	}
	return h, nil
}

// Path returns the history file path.
func (h *History) Path() string { return h.path }

// Append writes one entry.
func (h *History) Append(e Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHistoryClosed
	}
	if err := h.reopenIfReplacedLocked(); err != nil {
		return err
	}
	if err := writeEntry(h.file, e); err != nil {
		return err
	}
	if err := h.file.Sync(); err != nil {
		return err
	}
	h.count++

	if h.keep > 0 && h.count >= 2*h.keep {
		return h.pruneLocked(h.keep)
	}
	return nil
}

// HandleRemoved is a toast.Notifier OnRemoved hook.
func (h *History) HandleRemoved(t *toast.Toast) {
	if err := h.Append(EntryFromToast(t)); err != nil {
		h.logger.Warn("failed to record toast history", "id", t.ID(), "error", err)
	}
}

// Load reads every entry in file order.
func (h *History) Load() ([]Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHistoryClosed
	}
	return readEntries(h.file)
}

// Prune keeps only the newest keep entries. keep <= 0 clears the log.
func (h *History) Prune(keep int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHistoryClosed
	}
	return h.pruneLocked(keep)
}

// PruneBefore drops entries shown before cutoff and returns how many were
// removed.
func (h *History) PruneBefore(cutoff time.Time) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, ErrHistoryClosed
	}
	entries, err := readEntries(h.file)
	if err != nil {
		return 0, err
	}
	kept := slices.DeleteFunc(slices.Clone(entries), func(e Entry) bool {
		return e.ShownAt.Before(cutoff)
	})
	removed := len(entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, h.rewriteLocked(kept)
}

// reopenIfReplacedLocked follows the path when another process has
// rewritten the file, so appends do not land in an unlinked inode.
func (h *History) reopenIfReplacedLocked() error {
	onDisk, err := os.Stat(h.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	current, cerr := h.file.Stat()
	if cerr == nil && err == nil && os.SameFile(onDisk, current) {
		return nil
	}

	file, err := os.OpenFile(h.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to reopen history %s: %w", h.path, err)
	}
	_ = h.file.Close()
	h.file = file

	info, err := file.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		h.count = 0
		return writeHeader(file)
	}
	entries, err := readEntries(file)
	if err != nil {
		return err
	}
	h.count = len(entries)
	h.logger.Debug("history file replaced, reopened", "entries", h.count)
	return nil
}

func (h *History) pruneLocked(keep int) error {
	entries, err := readEntries(h.file)
	if err != nil {
		return err
	}
	if keep <= 0 {
		entries = nil
	} else if len(entries) > keep {
		entries = entries[len(entries)-keep:]
	}
	return h.rewriteLocked(entries)
}

// rewriteLocked replaces the file, keeping a backup until the new file is
// synced.
func (h *History) rewriteLocked(entries []Entry) error {
	if err := h.file.Close(); err != nil {
		return err
	}
	h.file = nil

	backup := h.path + ".bak"
	if err := os.Rename(h.path, backup); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	file, err := os.OpenFile(h.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND, 0o600)
	if err != nil {
		_ = os.Rename(backup, h.path)
		return fmt.Errorf("failed to create history file: %w", err)
	}
	h.file = file

	if err := writeHeader(file); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writeEntry(file, e); err != nil {
			return err
		}
	}
	if err := file.Sync(); err != nil {
		return err
	}
	h.count = len(entries)

	_ = os.Remove(backup)
	h.logger.Debug("history rewritten", "entries", len(entries))
	return nil
}

// Close releases the file.
func (h *History) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}

// ReadHistory reads a history file without opening it for writing. A
// missing file has no entries.
func ReadHistory(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readEntries(f)
}

func writeHeader(w io.Writer) error {
	data, err := json.Marshal(schemaHeader{SchemaVersion: SchemaVersion, CreatedAt: time.Now().Unix()})
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func writeEntry(w io.Writer, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// readEntries scans r from the start. Malformed lines are skipped.
func readEntries(r io.ReadSeeker) ([]Entry, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	first := true
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if first {
			first = false
			var header schemaHeader
			if err := json.Unmarshal(line, &header); err == nil && header.SchemaVersion > 0 {
				if header.SchemaVersion > SchemaVersion {
					return nil, fmt.Errorf("unsupported schema version %d (max: %d)", header.SchemaVersion, SchemaVersion)
				}
				continue
			}
		}

		var e Entry
		if err := json.Unmarshal(line, &e); err != nil || e.ID == "" {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("error reading history: %w", err)
	}

	if _, err := r.Seek(0, io.SeekEnd); err != nil {
		return entries, err
	}
	return entries, nil
}
