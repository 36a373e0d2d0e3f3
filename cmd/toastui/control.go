package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/dbus"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss <id>...",
	Short: "Close toasts by id",
	Long: `Close one or more visible toasts by the id printed by "toastui send".

Examples:
  id=$(toastui send -d 0 "Waiting for build")
  toastui dismiss "$id"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(cmd, func(ctx context.Context, c *dbus.Client) error {
			for _, id := range args {
				if err := c.Dismiss(ctx, id); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var closeAllCmd = &cobra.Command{
	Use:   "close-all",
	Short: "Close every visible toast",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(cmd, func(ctx context.Context, c *dbus.Client) error {
			return c.CloseAll(ctx)
		})
	},
}

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Remove every toast immediately",
	Long: `Remove every toast and container without exit animations and reset the
stylesheet. New toasts can still be sent afterwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(cmd, func(ctx context.Context, c *dbus.Client) error {
			return c.Destroy(ctx)
		})
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the daemon's rendered toast markup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(cmd, func(ctx context.Context, c *dbus.Client) error {
			out, err := c.Snapshot(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the daemon is running",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(cmd, func(ctx context.Context, c *dbus.Client) error {
			v, err := c.Version(ctx)
			if err != nil {
				return fmt.Errorf("daemon not reachable on %s: %w", dbus.BusName, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "toastuid running on %s (toast library v%s)\n", dbus.BusName, v)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dismissCmd, closeAllCmd, destroyCmd, snapshotCmd, statusCmd)
}
