package tui

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/dom"
	"github.com/jmylchreest/toastui/internal/schedule"
	"github.com/jmylchreest/toastui/internal/toast"
)

type inline struct{}

func (inline) Do(f func()) bool { f(); return true }

func newTestModel(t *testing.T) (Model, *toast.Notifier, *schedule.Manual) {
	t.Helper()
	clock := schedule.NewManual(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	n := toast.New(dom.NewDocument(), clock,
		toast.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	m := New(Options{Host: NewLoopHost(n, inline{})})
	return m, n, clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func resize(t *testing.T, m Model) Model {
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestModel_InitializingView(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_RendersToasts(t *testing.T) {
	m, n, _ := newTestModel(t)
	n.Notify("Build finished", toast.TypeSuccess)
	n.Notify("Disk almost full", toast.TypeWarning, toast.BottomLeft)

	m = resize(t, m)
	require.Len(t, m.boxes, 2)

	out := m.View()
	assert.Contains(t, out, "Build finished")
	assert.Contains(t, out, "Disk almost full")
	assert.Contains(t, out, closeGlyph)
}

func TestModel_TickRefreshes(t *testing.T) {
	m, n, _ := newTestModel(t)
	m = resize(t, m)
	assert.Empty(t, m.boxes)

	n.Notify("later")
	next, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Len(t, next.(Model).boxes, 1)
}

func TestModel_HoverPausesAndResumes(t *testing.T) {
	m, n, clock := newTestModel(t)
	tst := n.Show("hover me")
	m = resize(t, m)
	box := m.boxes[0]

	clock.Advance(time.Second)
	m = update(t, m, motion(box.X+2, box.Y+1))
	assert.Equal(t, toast.StatePaused, tst.State())
	assert.Equal(t, tst.ID(), m.hovered)

	clock.Advance(10 * time.Second)
	assert.Equal(t, toast.StatePaused, tst.State())

	m = update(t, m, motion(0, 20))
	assert.Equal(t, toast.StateMounted, tst.State())
	assert.Empty(t, m.hovered)

	clock.Advance(3 * time.Second)
	assert.Equal(t, toast.StateClosing, tst.State())
	assert.Equal(t, toast.ReasonExpired, tst.Reason())
}

func TestModel_ClickCloseControl(t *testing.T) {
	m, n, _ := newTestModel(t)
	clicked := 0
	tst := n.Show("close me", toast.WithOnClick(func() { clicked++ }))
	m = resize(t, m)
	box := m.boxes[0]

	m = update(t, m, press(box.closeX(), box.Y+1))
	assert.Equal(t, toast.StateClosing, tst.State())
	assert.Equal(t, toast.ReasonDismissed, tst.Reason())
	assert.Equal(t, 0, clicked)
	_ = m
}

func TestModel_ClickBody(t *testing.T) {
	m, n, _ := newTestModel(t)
	clicked := 0
	tst := n.Show("click me", toast.WithOnClick(func() { clicked++ }))
	m = resize(t, m)
	box := m.boxes[0]

	m = update(t, m, press(box.X+2, box.Y+1))
	assert.Equal(t, 1, clicked)
	assert.Equal(t, toast.StatePaused, tst.State(), "pointer is over the toast")

	// right clicks and clicks on empty space do nothing
	m = update(t, m, tea.MouseMsg{X: box.X + 2, Y: box.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m = update(t, m, press(0, 30))
	assert.Equal(t, 1, clicked)
	_ = m
}

func TestModel_Keys(t *testing.T) {
	m, n, clock := newTestModel(t)
	first := n.Show("first")
	clock.Advance(time.Millisecond)
	second := n.Show("second")
	m = resize(t, m)

	m = update(t, m, keyMsg("d"))
	assert.Equal(t, toast.StateClosing, second.State())
	assert.Equal(t, toast.StateMounted, first.State())

	m = update(t, m, keyMsg("x"))
	assert.Equal(t, toast.StateClosing, first.State())
	assert.Equal(t, toast.ReasonCloseAll, first.Reason())

	m = update(t, m, keyMsg("?"))
	assert.True(t, m.showHelp)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_CopyHoveredMessage(t *testing.T) {
	m, n, _ := newTestModel(t)
	n.Show("copy this")
	m = resize(t, m)

	var copied string
	m.copyFn = func(text, _ string) error {
		copied = text
		return nil
	}
	box := m.boxes[0]
	m = update(t, m, motion(box.X+1, box.Y+1))

	_, cmd := m.Update(keyMsg("c"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, copyResultMsg{}, msg)
	assert.Equal(t, "copy this", copied)

	m = update(t, m, copyResultMsg{err: errors.New("no clipboard")})
	m = update(t, m, statusMsg{text: "Copy failed: no clipboard", isErr: true})
	assert.Contains(t, m.View(), "Copy failed")
}

func TestModel_RemovedToastClearsHover(t *testing.T) {
	m, n, clock := newTestModel(t)
	tst := n.Show("bye")
	m = resize(t, m)
	box := m.boxes[0]
	m = update(t, m, motion(box.X+1, box.Y+1))
	require.Equal(t, tst.ID(), m.hovered)

	tst.Dismiss()
	clock.Advance(toast.DefaultExitDuration)
	m = update(t, m, tickMsg(time.Now()))
	assert.Empty(t, m.hovered)
	assert.Empty(t, m.boxes)
}

func TestClipboardArgv(t *testing.T) {
	found := func(names ...string) func(string) (string, error) {
		return func(name string) (string, error) {
			for _, n := range names {
				if n == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		}
	}

	assert.Equal(t, []string{"my-copy", "--flag"}, clipboardArgv("my-copy --flag", found()))
	assert.Equal(t, []string{"wl-copy"}, clipboardArgv("", found("wl-copy", "xclip")))
	assert.Equal(t, []string{"xsel", "--clipboard", "--input"}, clipboardArgv("  ", found("xsel")))
	assert.Nil(t, clipboardArgv("", found()))
}
