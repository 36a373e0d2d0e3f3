package dbus

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/dom"
	"github.com/jmylchreest/toastui/internal/schedule"
	"github.com/jmylchreest/toastui/internal/toast"
)

// inline runs tasks on the calling goroutine.
type inline struct{ closed bool }

func (e *inline) Do(f func()) bool {
	if e.closed {
		return false
	}
	f()
	return true
}

func newTestServer(t *testing.T) (*Server, *toast.Notifier, *schedule.Manual, *inline) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := schedule.NewManual(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	n := toast.New(dom.NewDocument(), clock, toast.WithLogger(logger))
	exec := &inline{}
	return NewServer(n, exec, logger), n, clock, exec
}

func TestServer_Notify(t *testing.T) {
	s, n, _, _ := newTestServer(t)

	id, derr := s.Notify("Saved", map[string]dbus.Variant{
		KeyType:     dbus.MakeVariant("success"),
		KeyPosition: dbus.MakeVariant("bottom-center"),
	})
	require.Nil(t, derr)
	require.NotEmpty(t, id)

	tst, ok := n.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "Saved", tst.Message())
	assert.Equal(t, toast.TypeSuccess, tst.Config().Type)
	assert.Equal(t, toast.BottomCenter, tst.Config().Position)
	assert.NotNil(t, tst.Config().OnClick)
}

func TestServer_NotifyEmptyMessage(t *testing.T) {
	s, n, _, _ := newTestServer(t)

	id, derr := s.Notify("", nil)
	require.Nil(t, derr)
	assert.Empty(t, id)
	assert.Equal(t, 0, n.Len())
}

func TestServer_Dismiss(t *testing.T) {
	s, n, clock, _ := newTestServer(t)

	id, _ := s.Notify("bye", nil)
	require.Nil(t, s.Dismiss(id))

	tst, ok := n.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, toast.StateClosing, tst.State())
	assert.Equal(t, toast.ReasonClosed, tst.Reason())

	clock.Advance(toast.DefaultExitDuration)
	assert.Equal(t, 0, n.Len())

	derr := s.Dismiss(id)
	require.NotNil(t, derr)
	assert.Equal(t, ErrNameUnknownToast, derr.Name)
}

func TestServer_CloseAllAndDestroy(t *testing.T) {
	s, n, clock, _ := newTestServer(t)

	s.Notify("one", nil)
	s.Notify("two", map[string]dbus.Variant{KeyPosition: dbus.MakeVariant("top-left")})

	require.Nil(t, s.CloseAll())
	clock.Advance(toast.DefaultExitDuration)
	assert.Equal(t, 0, n.Len())

	s.Notify("three", nil)
	require.Nil(t, s.Destroy())
	assert.Equal(t, 0, n.Len())
	assert.Empty(t, n.Registry().Containers())
}

func TestServer_Defaults(t *testing.T) {
	s, n, _, _ := newTestServer(t)

	require.Nil(t, s.SetDefaults(map[string]dbus.Variant{
		KeyTheme:    dbus.MakeVariant("dark"),
		KeyDuration: dbus.MakeVariant(int64(0)),
	}))
	assert.Equal(t, toast.ThemeDark, n.Defaults().Theme)

	got, derr := s.GetDefaults()
	require.Nil(t, derr)
	assert.Equal(t, "dark", got[KeyTheme].Value())
	assert.Equal(t, int64(0), got[KeyDuration].Value())
	assert.Equal(t, "top-right", got[KeyPosition].Value())
}

func TestServer_VersionAndSnapshot(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	v, derr := s.Version()
	require.Nil(t, derr)
	assert.Equal(t, toast.Version, v)

	s.Notify("a <b>", nil)
	out, derr := s.Snapshot()
	require.Nil(t, derr)
	assert.Contains(t, out, "a &lt;b&gt;")
	assert.Contains(t, out, "toast-container top-right")
}

func TestServer_Unavailable(t *testing.T) {
	s, _, _, exec := newTestServer(t)
	exec.closed = true

	_, derr := s.Notify("late", nil)
	require.NotNil(t, derr)
	assert.Equal(t, ErrNameUnavailable, derr.Name)
	assert.NotNil(t, s.CloseAll())
}

func TestServer_SignalsWithoutConnection(t *testing.T) {
	s, n, clock, _ := newTestServer(t)

	assert.Error(t, s.EmitClicked("x"))
	assert.Error(t, s.EmitClosed("x", toast.ReasonExpired))

	// hooks stay quiet when not connected
	id, _ := s.Notify("hi", nil)
	tst, _ := n.Lookup(id)
	tst.Element().Dispatch(dom.NewEvent(dom.EventClick))
	tst.Dismiss()
	clock.Advance(toast.DefaultExitDuration)
	assert.Equal(t, 0, n.Len())
}

func TestServer_StopWhenNotRunning(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	assert.NoError(t, s.Stop())
}
