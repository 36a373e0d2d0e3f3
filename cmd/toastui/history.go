package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"slices"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/adapter/output"
	"github.com/jmylchreest/toastui/internal/core"
	"github.com/jmylchreest/toastui/internal/store"
)

var historyOpts struct {
	// Filter options
	since  string
	typ    string
	filter string
	search string
	limit  int

	// Sort options
	sortBy    string
	sortOrder string

	// Output options
	format   string
	field    string
	template string

	follow bool
}

var historyCmd = &cobra.Command{
	Use:   "history [index|id]",
	Short: "Query the history of closed toasts",
	Long: `Query the history of toasts that have closed, newest first.

With an index (1-based, as listed) or an id or unique id prefix, outputs that
single entry. Arguments with a leading zero, like 01J, are id prefixes.

Filter expressions combine conditions with commas:
  type=error            exact match (=, !=)
  message~deploy        case-insensitive substring
  message~=^Disk        regular expression
  shown>1h              shown within the last hour (also <, >=, <=)
  visible<2s            on screen for less than two seconds
Fields: id, message, type, position, theme, reason, shown, visible

Examples:
  # Everything from the last day as JSON
  toastui history --since 1d --format json

  # Errors someone closed by hand
  toastui history --filter "type=error,reason=dismissed"

  # Pick an entry with a launcher and copy its message
  toastui history -f dmenu | fuzzel -d | cut -d'|' -f1 | xargs toastui history --field message | wl-copy

  # Print toasts as they close
  toastui history --follow`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyOpts.since, "since", "",
		"Show toasts from the last duration (e.g., 1h, 7d, 1w)")
	historyCmd.Flags().StringVarP(&historyOpts.typ, "type", "t", "",
		"Filter by toast type")
	historyCmd.Flags().StringVar(&historyOpts.filter, "filter", "",
		"Filter expression (see above)")
	historyCmd.Flags().StringVarP(&historyOpts.search, "search", "s", "",
		"Search in messages")
	historyCmd.Flags().IntVarP(&historyOpts.limit, "limit", "n", 0,
		"Maximum number of entries to show (0=unlimited)")

	historyCmd.Flags().StringVar(&historyOpts.sortBy, "sort", "shown",
		"Sort by field (shown, type, reason, visible)")
	historyCmd.Flags().StringVar(&historyOpts.sortOrder, "order", "desc",
		"Sort order (asc, desc)")

	historyCmd.Flags().StringVarP(&historyOpts.format, "format", "f", "plain",
		"Output format (plain, dmenu, json, yaml, ids)")
	historyCmd.Flags().StringVar(&historyOpts.field, "field", "",
		"Output a single field of one entry (id, message, type, position, theme, reason, shown, closed, visible)")
	historyCmd.Flags().StringVar(&historyOpts.template, "template", "",
		"Custom Go template for plain and dmenu output")

	historyCmd.Flags().BoolVarP(&historyOpts.follow, "follow", "F", false,
		"Keep running and print toasts as they close")
}

func runHistory(cmd *cobra.Command, args []string) error {
	format := output.FormatType(historyOpts.format)
	if !slices.Contains(output.ValidFormats(), format) {
		return fmt.Errorf("unknown format %q", historyOpts.format)
	}

	if cfg != nil && !cfg.History.Enabled {
		logger.Warn("history recording is disabled in the config; showing existing entries only")
	}

	entries, err := store.ReadHistory(historyPath())
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	logger.Debug("loaded history", "path", historyPath(), "entries", len(entries))

	selected, err := selectEntries(entries)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) > 0 {
		return outputOne(out, entries, selected, args[0])
	}

	formatter := output.NewFormatter(format, formatterOptions())
	if err := formatter.Format(out, selected); err != nil {
		return err
	}
	if historyOpts.follow {
		return followHistory(cmd, formatter, entries)
	}
	return nil
}

func formatterOptions() output.FormatterOptions {
	opts := output.DefaultFormatterOptions()
	opts.Template = historyOpts.template
	return opts
}

// selectEntries applies the filter, search, window and sort flags.
func selectEntries(entries []store.Entry) ([]store.Entry, error) {
	expr, err := core.ParseFilter(historyOpts.filter)
	if err != nil {
		return nil, err
	}
	typ, err := core.ParseType(historyOpts.typ)
	if err != nil {
		return nil, err
	}
	since, err := core.ParseDuration(historyOpts.since)
	if err != nil {
		return nil, fmt.Errorf("invalid --since: %w", err)
	}

	selected := core.FilterWithExpr(entries, expr)
	selected = core.Search(selected, historyOpts.search)
	selected = store.Filter(selected, store.FilterOptions{
		Since: since,
		Type:  string(typ),
		Limit: historyOpts.limit,
	}, nowFunc())
	core.Sort(selected, core.SortOptions{
		Field: core.ParseSortField(historyOpts.sortBy),
		Order: core.ParseSortOrder(historyOpts.sortOrder),
	})
	return selected, nil
}

// outputOne prints a single entry chosen by index into the listed entries,
// or by id across the whole history. Ids begin with digits, so only a
// plain positive integer without a leading zero is read as an index.
func outputOne(w io.Writer, all, listed []store.Entry, arg string) error {
	var e *store.Entry
	if idx, ok := parseIndex(arg); ok {
		e = core.LookupByIndex(listed, idx)
	} else {
		e, err = core.LookupByID(all, arg)
		if err != nil {
			return err
		}
	}
	if e == nil {
		return fmt.Errorf("no history entry %s", arg)
	}

	if historyOpts.field != "" {
		_, err := fmt.Fprintln(w, output.FormatField(e, historyOpts.field))
		return err
	}
	if historyOpts.format == string(output.FormatJSON) {
		return output.NewJSONFormatter(formatterOptions()).FormatSingle(w, e)
	}
	return output.NewFormatter(output.FormatType(historyOpts.format), formatterOptions()).
		Format(w, []store.Entry{*e})
}

func parseIndex(arg string) (int, bool) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx <= 0 || strconv.Itoa(idx) != arg {
		return 0, false
	}
	return idx, true
}

// followHistory prints entries appended after the initial listing until
// interrupted.
func followHistory(cmd *cobra.Command, formatter output.Formatter, seen []store.Entry) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	known := make(map[string]bool, len(seen))
	for _, e := range seen {
		known[e.ID] = true
	}

	changed := make(chan struct{}, 1)
	watcher, err := store.NewFileWatcher(historyPath(), func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to watch history: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to watch history: %w", err)
	}
	defer func() { _ = watcher.Stop() }()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-changed:
		}

		entries, err := store.ReadHistory(historyPath())
		if err != nil {
			logger.Warn("failed to reread history", "error", err)
			continue
		}
		var fresh []store.Entry
		for _, e := range entries {
			if !known[e.ID] {
				known[e.ID] = true
				fresh = append(fresh, e)
			}
		}
		fresh, err = selectEntries(fresh)
		if err != nil {
			return err
		}
		if len(fresh) == 0 {
			continue
		}
		// Oldest first, so the stream reads in closing order.
		slices.Reverse(fresh)
		if err := formatter.Format(cmd.OutOrStdout(), fresh); err != nil {
			return err
		}
	}
}
