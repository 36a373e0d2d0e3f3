package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/toastui/internal/toast"
)

// Executor runs a function on the goroutine that owns the notifier and waits
// for it. It returns false if the function could not be run.
type Executor interface {
	Do(f func()) bool
}

// Server exports a notifier on the session bus.
type Server struct {
	conn     *dbus.Conn
	logger   *slog.Logger
	notifier *toast.Notifier
	exec     Executor

	mu      sync.Mutex
	running bool
}

// NewServer creates a server for n. Calls are run through exec. It registers a
// removal hook on n, so it must be created before exec starts running tasks.
func NewServer(n *toast.Notifier, exec Executor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		logger:   logger,
		notifier: n,
		exec:     exec,
	}
	n.OnRemoved(s.handleRemoved)
	return s
}

// Start connects to the session bus and exports the service.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("server already running")
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.Export(s, ObjectPath, Interface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: string(ObjectPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: serviceMethods(),
				Signals: serviceSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), ObjectPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", BusName)
	}

	s.conn = conn
	s.running = true
	s.logger.Info("D-Bus server started", "name", BusName, "path", ObjectPath)
	return nil
}

// Stop releases the bus name and unexports the service.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	_ = s.conn.Export(nil, ObjectPath, Interface)
	_ = s.conn.Export(nil, ObjectPath, "org.freedesktop.DBus.Introspectable")
	if _, err := s.conn.ReleaseName(BusName); err != nil {
		return fmt.Errorf("failed to release bus name: %w", err)
	}
	s.conn = nil
	s.logger.Info("D-Bus server stopped")
	return nil
}

// run executes f on the notifier's goroutine.
func (s *Server) run(f func()) *dbus.Error {
	if !s.exec.Do(f) {
		return dbus.NewError(ErrNameUnavailable, []any{"toastui is shutting down"})
	}
	return nil
}

// Notify shows a toast and returns its id, or "" if nothing was shown.
// D-Bus method: Notify(s, a{sv}) -> s
func (s *Server) Notify(message string, opts map[string]dbus.Variant) (string, *dbus.Error) {
	p := DecodeOptions(opts)
	s.logger.Debug("Notify called", "message_len", len(message), "options", len(opts))

	var id string
	err := s.run(func() {
		var shown *toast.Toast
		shown = s.notifier.Show(message, p, toast.WithOnClick(func() {
			s.emitClicked(shown.ID())
		}))
		if shown != nil {
			id = shown.ID()
		}
	})
	return id, err
}

// Dismiss closes the toast with the given id.
// D-Bus method: Dismiss(s) -> nothing
func (s *Server) Dismiss(id string) *dbus.Error {
	var found bool
	if err := s.run(func() { found = s.notifier.Dismiss(id) }); err != nil {
		return err
	}
	if !found {
		return dbus.NewError(ErrNameUnknownToast, []any{"no toast with id " + id})
	}
	return nil
}

// CloseAll closes every visible toast.
// D-Bus method: CloseAll() -> nothing
func (s *Server) CloseAll() *dbus.Error {
	return s.run(s.notifier.CloseAll)
}

// SetDefaults merges the given options into the defaults.
// D-Bus method: SetDefaults(a{sv}) -> nothing
func (s *Server) SetDefaults(opts map[string]dbus.Variant) *dbus.Error {
	p := DecodeOptions(opts)
	return s.run(func() { s.notifier.SetDefaults(p) })
}

// GetDefaults returns the current defaults.
// D-Bus method: GetDefaults() -> a{sv}
func (s *Server) GetDefaults() (map[string]dbus.Variant, *dbus.Error) {
	var cfg toast.Config
	if err := s.run(func() { cfg = s.notifier.Defaults() }); err != nil {
		return nil, err
	}
	return EncodeConfig(cfg), nil
}

// Destroy removes every toast and container and the injected styles.
// D-Bus method: Destroy() -> nothing
func (s *Server) Destroy() *dbus.Error {
	return s.run(s.notifier.Destroy)
}

// Version returns the library version.
// D-Bus method: Version() -> s
func (s *Server) Version() (string, *dbus.Error) {
	return s.notifier.Version(), nil
}

// Snapshot returns the rendered document.
// D-Bus method: Snapshot() -> s
func (s *Server) Snapshot() (string, *dbus.Error) {
	var out string
	err := s.run(func() { out = s.notifier.Render() })
	return out, err
}

func serviceMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Notify",
			Args: []introspect.Arg{
				{Name: "message", Type: "s", Direction: "in"},
				{Name: "options", Type: "a{sv}", Direction: "in"},
				{Name: "id", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Dismiss",
			Args: []introspect.Arg{
				{Name: "id", Type: "s", Direction: "in"},
			},
		},
		{Name: "CloseAll"},
		{
			Name: "SetDefaults",
			Args: []introspect.Arg{
				{Name: "options", Type: "a{sv}", Direction: "in"},
			},
		},
		{
			Name: "GetDefaults",
			Args: []introspect.Arg{
				{Name: "options", Type: "a{sv}", Direction: "out"},
			},
		},
		{Name: "Destroy"},
		{
			Name: "Version",
			Args: []introspect.Arg{
				{Name: "version", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Snapshot",
			Args: []introspect.Arg{
				{Name: "html", Type: "s", Direction: "out"},
			},
		},
	}
}

func serviceSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "Closed",
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "reason", Type: "s"},
			},
		},
		{
			Name: "Clicked",
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
			},
		},
	}
}
