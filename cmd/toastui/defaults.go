package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toastui/internal/dbus"
	"github.com/jmylchreest/toastui/internal/toast"
)

var defaultsOpts struct {
	format string
	flags  toastFlags
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show or change the defaults new toasts inherit",
}

var defaultsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the daemon's current defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(cmd, func(ctx context.Context, c *dbus.Client) error {
			d, err := c.GetDefaults(ctx)
			if err != nil {
				return err
			}
			return writeDefaults(cmd.OutOrStdout(), d, defaultsOpts.format)
		})
	},
}

var defaultsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Merge new defaults into the daemon",
	Long: `Merge new defaults into the daemon. Only the flags given are changed.
Toasts already on screen keep their options.

Examples:
  toastui defaults set --position bottom-right --duration 6s
  toastui defaults set --theme dark --closable=false`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := defaultsOpts.flags.partial(cmd)
		if err != nil {
			return err
		}
		if p == (toast.Partial{}) {
			return fmt.Errorf("no defaults given")
		}
		return withDaemon(cmd, func(ctx context.Context, c *dbus.Client) error {
			return c.SetDefaults(ctx, p)
		})
	},
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
	defaultsCmd.AddCommand(defaultsGetCmd, defaultsSetCmd)

	defaultsGetCmd.Flags().StringVarP(&defaultsOpts.format, "format", "f", "yaml",
		"Output format (yaml, json)")
	defaultsOpts.flags.register(defaultsSetCmd, true)
}

// defaultsView is the printable form of a toast.Config.
type defaultsView struct {
	Type      string `json:"type" yaml:"type"`
	Position  string `json:"position" yaml:"position"`
	Duration  string `json:"duration" yaml:"duration"`
	Closable  bool   `json:"closable" yaml:"closable"`
	Animation string `json:"animation" yaml:"animation"`
	Theme     string `json:"theme" yaml:"theme"`
	Icon      string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

func writeDefaults(w io.Writer, c toast.Config, format string) error {
	v := defaultsView{
		Type:      string(c.Type),
		Position:  string(c.Position),
		Duration:  c.Duration.String(),
		Closable:  c.Closable,
		Animation: string(c.Animation),
		Theme:     string(c.Theme),
		Icon:      c.Icon,
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (use yaml or json)", format)
	}
}
