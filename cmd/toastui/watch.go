package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/dbus"
)

var watchOpts struct {
	json bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print toast events from the daemon",
	Long: `Print Closed and Clicked events as the daemon emits them, one per line,
until interrupted.

Examples:
  # React to a click on a specific toast
  id=$(toastui send -d 0 "Click to open the report")
  toastui watch --json | jq -r --arg id "$id" 'select(.id == $id and .event == "Clicked")'`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchOpts.json, "json", false,
		"Print events as JSON lines")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := dbus.Dial()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	events, err := client.Subscribe(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	for ev := range events {
		if watchOpts.json {
			if err := enc.Encode(ev); err != nil {
				return err
			}
			continue
		}
		if ev.Reason != "" {
			fmt.Fprintf(out, "%s\t%s\t%s\n", ev.Name, ev.ID, ev.Reason)
		} else {
			fmt.Fprintf(out, "%s\t%s\n", ev.Name, ev.ID)
		}
	}
	return nil
}
