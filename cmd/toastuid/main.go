// Package main is the entry point for the toastuid daemon.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/daemon"
	"github.com/jmylchreest/toastui/internal/tui"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	headless := flag.Bool("headless", false, "Run without the terminal view (D-Bus service only)")
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/toastui/toastui.toml)")
	historyPath := flag.String("history-file", "", "Path to history file (default: ~/.local/share/toastui/history.jsonl)")
	noBus := flag.Bool("no-dbus", false, "Do not claim the D-Bus service name")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("toastuid version", version)
		os.Exit(0)
	}

	logOut, closeLog, err := logWriter(*headless)
	if err != nil {
		fmt.Fprintln(os.Stderr, "toastuid:", err)
		os.Exit(1)
	}
	defer closeLog()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := run(*configPath, *historyPath, *headless, *noBus, logger); err != nil {
		logger.Error("toastuid failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(configPath, historyPath string, headless, noBus bool, logger *slog.Logger) error {
	logger.Info("starting toastuid", "version", version, "headless", headless)

	if configPath == "" {
		configPath = config.ConfigPath()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	d, err := daemon.New(cfg, daemon.Options{
		ConfigPath:  configPath,
		HistoryPath: historyPath,
		DisableBus:  noBus,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	daemonErr := make(chan error, 1)
	go func() { daemonErr <- d.Run(ctx) }()
	d.Internal().NotifyStartup(version)

	if headless {
		err := <-daemonErr
		logger.Info("toastuid stopped")
		return err
	}

	uiErr := tui.Run(ctx, tui.Options{
		Host:             tui.NewLoopHost(d.Notifier(), d.Loop()),
		Tick:             cfg.Display.Tick.Duration(),
		ClipboardCommand: cfg.Display.ClipboardCommand,
	})
	// Quitting the view stops the daemon.
	cancel()
	err = <-daemonErr
	logger.Info("toastuid stopped")
	return errors.Join(uiErr, err)
}

// logWriter picks the log destination. The terminal view owns the screen,
// so logs go to a file next to the history unless running headless.
func logWriter(headless bool) (io.Writer, func(), error) {
	if headless {
		return os.Stderr, func() {}, nil
	}
	if err := config.EnsureDataDir(); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	path := filepath.Join(config.DataPath(), "toastuid.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
