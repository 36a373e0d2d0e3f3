package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/adapter/input"
	"github.com/jmylchreest/toastui/internal/dbus"
	"github.com/jmylchreest/toastui/internal/toast"
)

var sendOpts struct {
	flags toastFlags
	stdin bool
	quiet bool
}

var sendCmd = &cobra.Command{
	Use:   "send [message...]",
	Short: "Show a toast",
	Long: `Show a toast on the running daemon and print its id.

Options that are not given fall back to the daemon's current defaults.

With --stdin, one toast is shown per input line. A line may be plain text
or a JSON object; a JSON array of objects is also accepted:

  {"message": "Deploy finished", "type": "success", "duration": "5s"}

Examples:
  # Show an info toast for 3 seconds
  toastui send --type info --duration 3s "Backup started"

  # Keep a toast until it is closed
  toastui send -t error -d 0 "Backup failed"

  # Feed toasts from a script
  ./deploy.sh | toastui send --stdin`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendOpts.flags.register(sendCmd, true)
	sendCmd.Flags().BoolVar(&sendOpts.stdin, "stdin", false,
		"Read toasts from standard input")
	sendCmd.Flags().BoolVarP(&sendOpts.quiet, "quiet", "q", false,
		"Do not print toast ids")

	for _, t := range []toast.Type{toast.TypeSuccess, toast.TypeError, toast.TypeWarning, toast.TypeInfo} {
		rootCmd.AddCommand(newTypedSendCmd(t))
	}
}

// newTypedSendCmd builds a shortcut such as "toastui success <message>".
func newTypedSendCmd(t toast.Type) *cobra.Command {
	var flags toastFlags
	cmd := &cobra.Command{
		Use:   string(t) + " <message...>",
		Short: fmt.Sprintf("Show a %s toast", t),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.partial(cmd)
			if err != nil {
				return err
			}
			typ := t
			p.Type = &typ
			return sendRequests(cmd, []input.Request{{Message: strings.Join(args, " "), Options: p}}, false)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	p, err := sendOpts.flags.partial(cmd)
	if err != nil {
		return err
	}

	var requests []input.Request
	if sendOpts.stdin {
		if len(args) > 0 {
			return errors.New("give a message or --stdin, not both")
		}
		src, err := input.NewSourceWithReader("stdin", cmd.InOrStdin())
		if err != nil {
			return err
		}
		requests, err = src.Read(cmd.Context())
		if err != nil {
			return err
		}
		// Flags act as defaults under each line's own options.
		for i := range requests {
			requests[i].Options = mergePartial(p, requests[i].Options)
		}
	} else {
		if len(args) == 0 {
			return errors.New("no message given")
		}
		requests = []input.Request{{Message: strings.Join(args, " "), Options: p}}
	}

	return sendRequests(cmd, requests, sendOpts.quiet)
}

func sendRequests(cmd *cobra.Command, requests []input.Request, quiet bool) error {
	return withDaemon(cmd, func(ctx context.Context, c *dbus.Client) error {
		for _, req := range requests {
			id, err := c.Notify(ctx, req.Message, req.Options)
			if err != nil {
				return err
			}
			if id == "" {
				logger.Warn("daemon ignored empty message")
				continue
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
		}
		return nil
	})
}
