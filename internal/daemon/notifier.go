package daemon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/toastui/internal/toast"
)

// NotificationLevel indicates the severity of an internal notification.
type NotificationLevel int

const (
	// NotificationLevelInfo is for informational messages.
	NotificationLevelInfo NotificationLevel = iota
	// NotificationLevelWarning is for warning messages.
	NotificationLevelWarning
	// NotificationLevelError is for error messages.
	NotificationLevelError
)

// toastType maps a level to the toast type used to show it.
func (l NotificationLevel) toastType() toast.Type {
	switch l {
	case NotificationLevelWarning:
		return toast.TypeWarning
	case NotificationLevelError:
		return toast.TypeError
	default:
		return toast.TypeInfo
	}
}

// Internal toasts stay up a little longer than the default and always carry
// a close control.
const (
	internalInfoDuration  = 3 * time.Second
	internalErrorDuration = 8 * time.Second
)

// InternalNotifier shows toasts about toastuid's own events, such as a
// config file that failed to reload. The same key is not shown again within
// the minimum interval.
type InternalNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	now    func() time.Time

	show func(message string, opts ...toast.Option)

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration

	enabled bool
}

// NewInternalNotifier creates an InternalNotifier. show must be safe to
// call from any goroutine, for example by posting onto the UI loop.
func NewInternalNotifier(show func(message string, opts ...toast.Option), logger *slog.Logger) *InternalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &InternalNotifier{
		logger:         logger,
		now:            time.Now,
		show:           show,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
		enabled:        true,
	}
}

// SetEnabled enables or disables internal notifications.
func (n *InternalNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between notifications sharing a key.
func (n *InternalNotifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify shows message unless notifications are disabled or key was used
// within the minimum interval. It reports whether the toast was requested.
func (n *InternalNotifier) Notify(key, message string, level NotificationLevel) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.enabled {
		return false
	}
	if n.show == nil {
		n.logger.Debug("internal notification skipped: no handler", "message", message)
		return false
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.logger.Debug("internal notification rate-limited", "key", key)
		return false
	}
	n.lastNotifyTime[key] = now

	d := internalInfoDuration
	if level != NotificationLevelInfo {
		d = internalErrorDuration
	}

	n.logger.Debug("sending internal notification", "key", key, "level", level)
	n.show(message,
		level.toastType(),
		toast.WithDuration(d),
		toast.WithClosable(true),
	)
	return true
}

// NotifyConfigReloaded reports a successful config reload.
func (n *InternalNotifier) NotifyConfigReloaded() {
	n.Notify("config-reload", "Configuration reloaded", NotificationLevelInfo)
}

// NotifyConfigError reports a config file that failed to load.
func (n *InternalNotifier) NotifyConfigError(err error) {
	n.Notify("config-error", "Failed to reload configuration: "+err.Error(), NotificationLevelError)
}

// NotifyThemeReloaded reports a stylesheet change.
func (n *InternalNotifier) NotifyThemeReloaded(themeName string) {
	n.Notify("theme-reload", "Theme '"+themeName+"' reloaded", NotificationLevelInfo)
}

// NotifyAudioError reports a failed sound playback.
func (n *InternalNotifier) NotifyAudioError(err error) {
	n.Notify("audio-error", "Failed to play notification sound: "+err.Error(), NotificationLevelWarning)
}

// NotifyStartup announces that the daemon is running.
func (n *InternalNotifier) NotifyStartup(version string) {
	n.Notify("startup", "toastui v"+version+" is running", NotificationLevelInfo)
}
