package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/toastui/internal/audio"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/dbus"
	"github.com/jmylchreest/toastui/internal/dom"
	"github.com/jmylchreest/toastui/internal/schedule"
	"github.com/jmylchreest/toastui/internal/store"
	"github.com/jmylchreest/toastui/internal/theme"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Options configures a Daemon.
type Options struct {
	// ConfigPath is watched for changes. Empty disables hot reload.
	ConfigPath string
	// HistoryPath overrides the history file location.
	HistoryPath string
	// ThemesDir overrides the user themes directory.
	ThemesDir string
	// AudioBackend overrides the speaker player.
	AudioBackend audio.Backend
	// DisableBus skips the D-Bus server.
	DisableBus bool
	Logger     *slog.Logger
}

// Daemon owns the document, the UI loop and the notifier, and connects
// them to the host services.
type Daemon struct {
	logger *slog.Logger
	opts   Options
	cfg    *config.Config
	ctx    context.Context

	doc      *dom.Document
	loop     *schedule.Loop
	notifier *toast.Notifier

	themes   *theme.Loader
	audio    *audio.Manager
	history  *store.History
	server   *dbus.Server
	watcher  *ConfigWatcher
	internal *InternalNotifier
}

// New builds a daemon from cfg. Nothing runs until Run is called.
func New(cfg *config.Config, opts Options) (*Daemon, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	d := &Daemon{
		logger: logger,
		opts:   opts,
		cfg:    cfg,
		doc:    dom.NewDocument(),
		loop:   schedule.NewLoop(logger.With("component", "loop")),
		ctx:    context.Background(),
	}

	d.notifier = toast.New(d.doc, d.loop,
		toast.WithLogger(logger.With("component", "toast")),
		toast.WithExitDuration(cfg.Display.ExitDuration.Duration()),
		toast.WithDefaults(cfg.ToastDefaults()),
	)

	d.internal = NewInternalNotifier(d.post, logger.With("component", "internal"))

	themesDir := opts.ThemesDir
	if themesDir == "" {
		if dir, err := theme.ThemesDir(); err == nil {
			themesDir = dir
		} else {
			logger.Warn("user themes unavailable", "error", err)
		}
	}
	d.themes = theme.NewLoader(themesDir, d.applyStylesheet, logger.With("component", "theme"))
	d.themes.SetReloadCallback(d.internal.NotifyThemeReloaded)

	d.audio = audio.NewManager(cfg, opts.AudioBackend, logger.With("component", "audio"))
	d.audio.SetErrorHandler(d.internal.NotifyAudioError)
	d.notifier.OnMounted(d.audio.HandleMounted)

	if cfg.History.Enabled {
		path := opts.HistoryPath
		if path == "" {
			if err := config.EnsureDataDir(); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
			path = config.HistoryPath()
		}
		h, err := store.OpenHistory(path, cfg.History.Keep, logger.With("component", "history"))
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		d.history = h
		d.notifier.OnRemoved(h.HandleRemoved)
	}

	if !opts.DisableBus {
		d.server = dbus.NewServer(d.notifier, d.loop, logger.With("component", "dbus"))
	}

	if opts.ConfigPath != "" {
		d.watcher = NewConfigWatcher(opts.ConfigPath, logger.With("component", "config"))
		d.watcher.SetReloadCallback(d.applyConfig)
		d.watcher.SetErrorCallback(d.internal.NotifyConfigError)
	}

	return d, nil
}

// Loop returns the UI loop every notifier call must run on.
func (d *Daemon) Loop() *schedule.Loop { return d.loop }

// Notifier returns the notifier. Use it only from tasks on Loop.
func (d *Daemon) Notifier() *toast.Notifier { return d.notifier }

// Document returns the page the notifier renders into.
func (d *Daemon) Document() *dom.Document { return d.doc }

// Config returns the configuration the daemon was started with.
func (d *Daemon) Config() *config.Config { return d.cfg }

// Internal returns the notifier for daemon events.
func (d *Daemon) Internal() *InternalNotifier { return d.internal }

// Run starts the loop and the host services and blocks until ctx is done.
func (d *Daemon) Run(ctx context.Context) error {
	d.ctx = ctx
	loopErr := make(chan error, 1)
	go func() { loopErr <- d.loop.Run(ctx) }()

	d.themes.Load(d.cfg.Theme.Name)
	d.themes.StartHotReload(ctx)

	if d.cfg.Audio.Enabled {
		if err := d.audio.Start(ctx); err != nil {
			d.logger.Warn("failed to start audio", "error", err)
		}
	}

	if d.server != nil {
		if err := d.server.Start(); err != nil {
			d.shutdown()
			return fmt.Errorf("failed to start D-Bus server: %w", err)
		}
	}

	if d.watcher != nil {
		if err := d.watcher.Start(ctx, d.cfg); err != nil {
			d.logger.Warn("failed to watch config file", "path", d.opts.ConfigPath, "error", err)
		}
	}

	d.logger.Info("toastui daemon started", "version", toast.Version)

	err := <-loopErr
	d.shutdown()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (d *Daemon) shutdown() {
	if d.watcher != nil {
		d.watcher.Stop()
	}
	if d.server != nil {
		if err := d.server.Stop(); err != nil {
			d.logger.Warn("failed to stop D-Bus server", "error", err)
		}
	}
	d.themes.StopHotReload()
	d.audio.Stop()
	if d.history != nil {
		if err := d.history.Close(); err != nil {
			d.logger.Warn("failed to close history", "error", err)
		}
	}
	d.logger.Info("toastui daemon stopped")
}

// post shows a toast from any goroutine.
func (d *Daemon) post(message string, opts ...toast.Option) {
	d.loop.Post(func() { d.notifier.Notify(message, opts...) })
}

func (d *Daemon) applyStylesheet(css string) {
	d.loop.Post(func() { d.notifier.SetStylesheet(css) })
}

// applyConfig applies a reloaded configuration. Exit duration and history
// settings take effect on restart.
func (d *Daemon) applyConfig(cfg *config.Config) {
	defaults := cfg.ToastDefaults()
	d.loop.Post(func() { d.notifier.SetDefaults(defaults) })

	name := cfg.Theme.Name
	if name == "" {
		name = theme.DefaultThemeName
	}
	if name != d.currentThemeName() {
		d.themes.Load(name)
		d.themes.StartHotReload(d.ctx)
	}

	d.audio.UpdateConfig(cfg)
	d.internal.NotifyConfigReloaded()
}

func (d *Daemon) currentThemeName() string {
	if t := d.themes.Current(); t != nil {
		return t.Name
	}
	return ""
}
