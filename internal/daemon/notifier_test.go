package daemon

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/dom"
	"github.com/jmylchreest/toastui/internal/schedule"
	"github.com/jmylchreest/toastui/internal/toast"
)

type shown struct {
	message string
	cfg     toast.Config
}

func newRecordingNotifier() (*InternalNotifier, *[]shown, *time.Time) {
	var got []shown
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	n := NewInternalNotifier(func(message string, opts ...toast.Option) {
		got = append(got, shown{message: message, cfg: toast.Resolve(toast.DefaultConfig(), opts...)})
	}, nil)
	n.now = func() time.Time { return now }
	return n, &got, &now
}

func TestInternalNotifier_Levels(t *testing.T) {
	n, got, _ := newRecordingNotifier()

	n.NotifyConfigReloaded()
	n.NotifyConfigError(errors.New("bad toml"))
	n.NotifyAudioError(errors.New("no device"))

	require.Len(t, *got, 3)
	assert.Equal(t, toast.TypeInfo, (*got)[0].cfg.Type)
	assert.Equal(t, internalInfoDuration, (*got)[0].cfg.Duration)
	assert.Equal(t, toast.TypeError, (*got)[1].cfg.Type)
	assert.Contains(t, (*got)[1].message, "bad toml")
	assert.Equal(t, internalErrorDuration, (*got)[1].cfg.Duration)
	assert.Equal(t, toast.TypeWarning, (*got)[2].cfg.Type)
	for _, s := range *got {
		assert.True(t, s.cfg.Closable)
	}
}

func TestInternalNotifier_RateLimit(t *testing.T) {
	n, got, now := newRecordingNotifier()

	assert.True(t, n.Notify("k", "first", NotificationLevelInfo))
	assert.False(t, n.Notify("k", "again", NotificationLevelInfo))
	assert.True(t, n.Notify("other", "different key", NotificationLevelInfo))

	*now = now.Add(5 * time.Second)
	assert.True(t, n.Notify("k", "later", NotificationLevelInfo))

	n.SetMinInterval(0)
	assert.True(t, n.Notify("k", "unlimited", NotificationLevelInfo))
	assert.Len(t, *got, 4)
}

func TestInternalNotifier_Disabled(t *testing.T) {
	n, got, _ := newRecordingNotifier()
	n.SetEnabled(false)
	assert.False(t, n.Notify("k", "hidden", NotificationLevelError))
	assert.Empty(t, *got)

	assert.False(t, NewInternalNotifier(nil, nil).Notify("k", "no handler", NotificationLevelInfo))
}

func TestInternalNotifier_ShowsToast(t *testing.T) {
	tn := toast.New(dom.NewDocument(), schedule.NewManual(time.Now()))
	n := NewInternalNotifier(func(message string, opts ...toast.Option) {
		tn.Notify(message, opts...)
	}, nil)

	n.NotifyStartup(toast.Version)
	require.Equal(t, 1, tn.Len())
	views := tn.Snapshot()
	require.Len(t, views, 1)
	assert.Equal(t, "toastui v"+toast.Version+" is running", views[0].Toasts[0].Message)
}
