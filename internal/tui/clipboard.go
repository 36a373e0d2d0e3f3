package tui

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

const clipboardTimeout = 5 * time.Second

var errNoClipboard = errors.New("no clipboard command available")

// clipboardCandidates are tried in order when no command is configured.
// Wayland first, then X11.
var clipboardCandidates = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
}

// copyText pipes a toast message into the clipboard command.
func copyText(text, command string) error {
	argv := clipboardArgv(command, exec.LookPath)
	if len(argv) == 0 {
		return errNoClipboard
	}

	ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
	defer cancel()

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Stdin = strings.NewReader(text)
	return c.Run()
}

// clipboardArgv splits the configured command, or picks the first candidate
// that lookPath can find.
func clipboardArgv(configured string, lookPath func(string) (string, error)) []string {
	if fields := strings.Fields(configured); len(fields) > 0 {
		return fields
	}
	for _, argv := range clipboardCandidates {
		if _, err := lookPath(argv[0]); err == nil {
			return argv
		}
	}
	return nil
}
