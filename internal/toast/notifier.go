package toast

import (
	"crypto/rand"
	"log/slog"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/toastui/internal/dom"
	"github.com/jmylchreest/toastui/internal/schedule"
	"github.com/jmylchreest/toastui/internal/theme"
)

// Version is the library version reported by Notifier.Version.
const Version = "1.0.4"

// DefaultExitDuration matches the exit animation in the bundled stylesheets.
const DefaultExitDuration = 300 * time.Millisecond

// Disposer closes the toast it was returned for. Calling it more than once,
// or after the toast closed on its own, has no effect.
type Disposer func()

func noopDisposer() {}

// Notifier is the entry point for showing toasts on one document.
type Notifier struct {
	logger       *slog.Logger
	doc          *dom.Document
	sched        schedule.Scheduler
	registry     *Registry
	defaults     Config
	exitDuration time.Duration

	toasts     map[string]*Toast
	destroying bool
	onMounted  []func(*Toast)
	onRemoved  []func(*Toast)
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) NotifierOption {
	return func(n *Notifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithExitDuration sets how long the exit animation runs before removal.
func WithExitDuration(d time.Duration) NotifierOption {
	return func(n *Notifier) {
		if d >= 0 {
			n.exitDuration = d
		}
	}
}

// WithStylesheet replaces the bundled stylesheet.
func WithStylesheet(css string) NotifierOption {
	return func(n *Notifier) {
		n.registry.css = css
	}
}

// WithDefaults applies opts to the global defaults.
func WithDefaults(opts ...Option) NotifierOption {
	return func(n *Notifier) {
		n.defaults = Resolve(n.defaults, opts...)
	}
}

// New creates a Notifier for doc. A nil doc means there is no page to draw
// on: every operation then logs a warning and does nothing.
func New(doc *dom.Document, sched schedule.Scheduler, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		logger:       slog.Default(),
		doc:          doc,
		sched:        sched,
		registry:     NewRegistry(doc, theme.DefaultStylesheet()),
		defaults:     DefaultConfig(),
		exitDuration: DefaultExitDuration,
		toasts:       make(map[string]*Toast),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Registry returns the page state of the notifier.
func (n *Notifier) Registry() *Registry { return n.registry }

// Version returns the library version.
func (n *Notifier) Version() string { return Version }

// Notify shows a toast and returns a function that closes it. Options are
// applied over the current defaults. Without a document, or with an empty
// message, nothing is shown and a no-op disposer is returned.
func (n *Notifier) Notify(message string, opts ...Option) Disposer {
	t := n.Show(message, opts...)
	if t == nil {
		return noopDisposer
	}
	return t.Dismiss
}

// Show is Notify returning the toast itself, or nil if nothing was shown.
func (n *Notifier) Show(message string, opts ...Option) *Toast {
	if n.doc == nil {
		n.logger.Warn("no document available, toast not shown")
		return nil
	}
	if n.destroying {
		n.logger.Warn("notifier is being destroyed, toast not shown")
		return nil
	}
	n.registry.EnsureStyles()

	if message == "" {
		n.logger.Warn("toast message is empty, nothing shown")
		return nil
	}

	id, err := ulid.New(ulid.Timestamp(n.sched.Now()), rand.Reader)
	if err != nil {
		n.logger.Warn("failed to generate toast id", "error", err)
		return nil
	}

	cfg := Resolve(n.defaults, opts...)
	t := newToast(n, id.String(), message, cfg)
	t.mount(n.registry.Container(cfg.Position))
	n.toasts[t.id] = t

	n.logger.Debug("toast shown", "id", t.id, "type", cfg.Type, "position", cfg.Position, "duration", cfg.Duration)
	for _, fn := range n.onMounted {
		n.invokeHook("onMounted", t, fn)
	}
	return t
}

// Success shows a toast of type success.
func (n *Notifier) Success(message string, opts ...Option) Disposer {
	return n.Notify(message, withType(opts, TypeSuccess)...)
}

// Error shows a toast of type error.
func (n *Notifier) Error(message string, opts ...Option) Disposer {
	return n.Notify(message, withType(opts, TypeError)...)
}

// Warning shows a toast of type warning.
func (n *Notifier) Warning(message string, opts ...Option) Disposer {
	return n.Notify(message, withType(opts, TypeWarning)...)
}

// Info shows a toast of type info.
func (n *Notifier) Info(message string, opts ...Option) Disposer {
	return n.Notify(message, withType(opts, TypeInfo)...)
}

// The type is applied last so it wins over any type in opts.
func withType(opts []Option, t Type) []Option {
	return append(slices.Clone(opts), t)
}

// CloseAll starts closing every live toast in every container.
func (n *Notifier) CloseAll() {
	if n.doc == nil {
		n.logger.Warn("no document available, nothing to close")
		return
	}
	for _, c := range n.registry.Containers() {
		for _, t := range c.Toasts() {
			t.close(ReasonCloseAll)
		}
	}
}

// SetDefaults merges opts into the defaults used by later toasts.
func (n *Notifier) SetDefaults(opts ...Option) {
	n.defaults = Resolve(n.defaults, opts...)
}

// Defaults returns a copy of the current defaults.
func (n *Notifier) Defaults() Config {
	return n.defaults
}

// Destroy removes every toast, container and the stylesheet immediately.
// Toasts not already closing get their onClose callback; toasts requested
// from those callbacks are not shown. The notifier can be used again
// afterwards.
func (n *Notifier) Destroy() {
	if n.doc == nil {
		n.logger.Warn("no document available, nothing to destroy")
		return
	}
	n.destroying = true
	defer func() { n.destroying = false }()
	for _, c := range n.registry.Containers() {
		for _, t := range c.Toasts() {
			t.teardown(ReasonDestroyed)
		}
	}
	n.registry.Teardown()
	n.logger.Debug("notifier destroyed")
}

// Dismiss closes the toast with the given id. It reports whether the toast
// was live.
func (n *Notifier) Dismiss(id string) bool {
	t, ok := n.toasts[id]
	if !ok {
		return false
	}
	t.Dismiss()
	return true
}

// Lookup returns the live toast with the given id.
func (n *Notifier) Lookup(id string) (*Toast, bool) {
	t, ok := n.toasts[id]
	return t, ok
}

// Len returns the number of toasts not yet removed.
func (n *Notifier) Len() int { return len(n.toasts) }

// SetStylesheet swaps the stylesheet, updating the page if it was injected.
func (n *Notifier) SetStylesheet(css string) {
	n.registry.SetStylesheet(css)
}

// OnMounted registers fn to run after each toast is shown.
func (n *Notifier) OnMounted(fn func(*Toast)) {
	n.onMounted = append(n.onMounted, fn)
}

// OnRemoved registers fn to run after each toast leaves the page.
func (n *Notifier) OnRemoved(fn func(*Toast)) {
	n.onRemoved = append(n.onRemoved, fn)
}

func (n *Notifier) forget(t *Toast) {
	delete(n.toasts, t.id)
	for _, fn := range n.onRemoved {
		n.invokeHook("onRemoved", t, fn)
	}
}

// invoke runs a user callback, logging instead of propagating a panic.
func (n *Notifier) invoke(name string, t *Toast, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			n.logger.Warn("toast callback panicked", "callback", name, "id", t.id, "panic", r)
		}
	}()
	fn()
}

func (n *Notifier) invokeHook(name string, t *Toast, fn func(*Toast)) {
	n.invoke(name, t, func() { fn(t) })
}
