package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/core"
	"github.com/jmylchreest/toastui/internal/store"
)

var pruneOpts struct {
	olderThan string
	keep      int
	dryRun    bool
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old toasts from history",
	Long: `Remove old entries from the toast history.

A running daemon notices the rewritten file and keeps appending to it.

Examples:
  # Remove toasts older than 7 days
  toastui prune --older-than 7d

  # Keep only the 100 most recent toasts
  toastui prune --keep 100

  # Preview what would be removed (dry run)
  toastui prune --older-than 48h --dry-run`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().StringVar(&pruneOpts.olderThan, "older-than", "",
		"Remove toasts shown before this duration ago (e.g., 48h, 7d, 1w)")
	pruneCmd.Flags().IntVar(&pruneOpts.keep, "keep", 0,
		"Keep only the N most recent toasts (0=unlimited)")
	pruneCmd.Flags().BoolVar(&pruneOpts.dryRun, "dry-run", false,
		"Show what would be removed without actually removing")
}

func runPrune(cmd *cobra.Command, args []string) error {
	if pruneOpts.olderThan == "" && pruneOpts.keep == 0 {
		return fmt.Errorf("specify --older-than or --keep")
	}

	var cutoff time.Time
	if pruneOpts.olderThan != "" {
		d, err := core.ParseDuration(pruneOpts.olderThan)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		if d > 0 {
			cutoff = nowFunc().Add(-d)
		}
	}

	out := cmd.OutOrStdout()
	entries, err := store.ReadHistory(historyPath())
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No toasts in history")
		return nil
	}

	if pruneOpts.dryRun {
		n := countPruned(entries, cutoff, pruneOpts.keep)
		fmt.Fprintf(out, "Would remove %s of %s toasts\n", humanize.Comma(int64(n)), humanize.Comma(int64(len(entries))))
		return nil
	}

	h, err := store.OpenHistory(historyPath(), 0, logger)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	removed := 0
	if !cutoff.IsZero() {
		n, err := h.PruneBefore(cutoff)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
		removed += n
	}
	if pruneOpts.keep > 0 {
		remaining := len(entries) - removed
		if remaining > pruneOpts.keep {
			if err := h.Prune(pruneOpts.keep); err != nil {
				return fmt.Errorf("failed to prune history: %w", err)
			}
			removed += remaining - pruneOpts.keep
		}
	}

	fmt.Fprintf(out, "Removed %s toasts\n", humanize.Comma(int64(removed)))
	return nil
}

// countPruned mirrors runPrune without touching the file.
func countPruned(entries []store.Entry, cutoff time.Time, keep int) int {
	remaining := 0
	for _, e := range entries {
		if cutoff.IsZero() || !e.ShownAt.Before(cutoff) {
			remaining++
		}
	}
	removed := len(entries) - remaining
	if keep > 0 && remaining > keep {
		removed += remaining - keep
	}
	return removed
}

// nowFunc is replaced in tests.
var nowFunc = time.Now
