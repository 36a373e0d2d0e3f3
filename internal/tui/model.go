// Package tui is a terminal host for toasts. It draws the notifier's
// containers at their six anchors and turns mouse input into the pointer
// events a toast listens for: hovering pauses, clicking the body or the close
// control dispatches a click.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/toastui/internal/dom"
	"github.com/jmylchreest/toastui/internal/toast"
)

// DefaultTick is the redraw interval used when none is configured.
const DefaultTick = 50 * time.Millisecond

// Options configures the TUI.
type Options struct {
	Host             Host
	Tick             time.Duration
	ClipboardCommand string
}

// Model is the main TUI model.
type Model struct {
	host      Host
	tick      time.Duration
	clipboard string
	copyFn    func(text, command string) error

	keys     KeyMap
	help     help.Model
	showHelp bool

	views   []toast.ContainerView
	boxes   []Box
	hovered string

	width  int
	height int
	ready  bool

	statusMsg string
	statusErr bool
}

// New creates a model for opts.
func New(opts Options) Model {
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	return Model{
		host:      opts.Host,
		tick:      tick,
		clipboard: opts.ClipboardCommand,
		copyFn:    copyText,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
}

type tickMsg time.Time

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// Init starts the redraw ticker.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.refresh()
		return m, nil

	case tickMsg:
		m.refresh()
		return m, m.tickCmd()

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Copy failed: " + msg.err.Error(), isErr: true}
			}
		}
		return m, func() tea.Msg {
			return statusMsg{text: "Copied to clipboard"}
		}
	}
	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.setHover("")
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.refresh()

	case key.Matches(msg, m.keys.DismissNewest):
		if v, ok := m.newest(); ok {
			m.host.Dismiss(v.ID)
			m.refresh()
		}

	case key.Matches(msg, m.keys.CloseAll):
		m.host.CloseAll()
		m.refresh()

	case key.Matches(msg, m.keys.Copy):
		v, ok := m.find(m.hovered)
		if !ok {
			v, ok = m.newest()
		}
		if !ok {
			return m, nil
		}
		return m, m.copyMessage(v.Message)
	}
	return m, nil
}

// handleMouse turns pointer motion into enter/leave events and left clicks
// into click events on the body or the close control.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	box, region := HitTest(m.boxes, msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.setHover(box.ID)

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || region == RegionNone {
			return
		}
		m.setHover(box.ID)
		target := TargetBody
		if region == RegionClose {
			target = TargetClose
		}
		m.host.Dispatch(box.ID, target, dom.EventClick)
		m.refresh()
	}
}

// setHover moves the pointer to the toast with the given id, or off every
// toast when id is empty.
func (m *Model) setHover(id string) {
	if id == m.hovered {
		return
	}
	if m.hovered != "" {
		m.host.Dispatch(m.hovered, TargetBody, dom.EventMouseLeave)
	}
	if id != "" {
		m.host.Dispatch(id, TargetBody, dom.EventMouseEnter)
	}
	m.hovered = id
}

// refresh reloads the views and recomputes the layout.
func (m *Model) refresh() {
	if m.host == nil {
		return
	}
	m.views = m.host.Snapshot()
	m.boxes = Layout(m.views, m.width, m.canvasHeight())
	if _, ok := m.find(m.hovered); !ok {
		m.hovered = ""
	}
}

func (m Model) canvasHeight() int {
	h := m.height - lipgloss.Height(m.footer())
	if h < 0 {
		return 0
	}
	return h
}

// find returns the view of a toast by id.
func (m Model) find(id string) (toast.View, bool) {
	if id == "" {
		return toast.View{}, false
	}
	for _, c := range m.views {
		for _, v := range c.Toasts {
			if v.ID == id {
				return v, true
			}
		}
	}
	return toast.View{}, false
}

// newest returns the most recently shown toast that is not closing. Toast
// ids sort by creation time.
func (m Model) newest() (toast.View, bool) {
	var best toast.View
	found := false
	for _, c := range m.views {
		for _, v := range c.Toasts {
			if v.State == toast.StateClosing || v.State == toast.StateRemoved {
				continue
			}
			if !found || v.ID > best.ID {
				best = v
				found = true
			}
		}
	}
	return best, found
}

func (m Model) copyMessage(text string) tea.Cmd {
	copyFn, command := m.copyFn, m.clipboard
	return func() tea.Msg {
		return copyResultMsg{err: copyFn(text, command)}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return renderCanvas(m.views, m.width, m.canvasHeight()) + "\n" + m.footer()
}

func (m Model) footer() string {
	if m.statusMsg != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			style = style.Foreground(lipgloss.Color("9"))
		}
		return style.Render(m.statusMsg)
	}
	return m.help.View(m.keys)
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
