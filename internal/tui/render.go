package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/toastui/internal/toast"
)

const closeGlyph = "×"

// accentColor returns the border and progress colour of a toast type.
func accentColor(t toast.Type) lipgloss.Color {
	switch t {
	case toast.TypeSuccess:
		return lipgloss.Color("10")
	case toast.TypeError:
		return lipgloss.Color("9")
	case toast.TypeWarning:
		return lipgloss.Color("11")
	case toast.TypeInfo:
		return lipgloss.Color("12")
	default:
		return lipgloss.Color("8")
	}
}

func cardStyle(v toast.View, cw int) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor(v.Type)).
		Padding(0, paddingSize).
		Width(cw - 2*borderSize)

	if v.Theme == toast.ThemeDark {
		s = s.Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	}
	switch v.State {
	case toast.StatePaused:
		s = s.BorderStyle(lipgloss.ThickBorder())
	case toast.StateClosing:
		s = s.Faint(true)
	}
	return s
}

// renderCard draws one toast. The result is exactly cardWidth(width) cells
// wide and cardHeight(v) rows high.
func renderCard(v toast.View, cw int) string {
	inner := cw - 2*borderSize - 2*paddingSize

	icon := v.Icon
	closeW := 0
	if v.Closable {
		closeW = 1 + ansi.StringWidth(closeGlyph)
	}
	msgW := inner - ansi.StringWidth(icon) - 1 - closeW
	if msgW < 1 {
		icon = ""
		msgW = inner - closeW
	}

	msg := strings.Join(strings.Fields(v.Message), " ")
	msg = ansi.Truncate(msg, max(msgW, 0), "…")
	if pad := msgW - ansi.StringWidth(msg); pad > 0 {
		msg += strings.Repeat(" ", pad)
	}

	row := msg
	if icon != "" {
		row = icon + " " + msg
	}
	if v.Closable {
		row += " " + closeGlyph
	}

	lines := []string{row}
	if v.HasProgress {
		bar := progress.New(
			progress.WithWidth(inner),
			progress.WithoutPercentage(),
			progress.WithSolidFill(string(accentColor(v.Type))),
		)
		lines = append(lines, bar.ViewAs(v.Progress/100))
	}
	return cardStyle(v, cw).Render(strings.Join(lines, "\n"))
}

// renderColumn stacks the cards of one container. Bottom anchors put the
// oldest toast last so it lands on the bottom edge.
func renderColumn(c toast.ContainerView, cw int) string {
	cards := make([]string, 0, len(c.Toasts))
	for _, v := range c.Toasts {
		cards = append(cards, renderCard(v, cw))
	}
	if c.Position.IsBottom() {
		slices.Reverse(cards)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// renderBand lays out the left, center and right columns of one edge.
func renderBand(cols map[toast.Position]string, left, center, right toast.Position, width, cw int, valign lipgloss.Position) string {
	if len(cols) == 0 {
		return ""
	}
	if isNarrow(width, cw) {
		var parts []string
		for _, p := range []toast.Position{left, center, right} {
			if s, ok := cols[p]; ok {
				parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Left, s))
			}
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	cx := columnX(center, width, cw)
	rx := columnX(right, width, cw)
	return lipgloss.JoinHorizontal(valign,
		lipgloss.PlaceHorizontal(cx, lipgloss.Left, cols[left]),
		lipgloss.PlaceHorizontal(rx-cx, lipgloss.Left, cols[center]),
		lipgloss.PlaceHorizontal(width-rx, lipgloss.Right, cols[right]),
	)
}

// renderCanvas draws every container on a width x height canvas.
func renderCanvas(views []toast.ContainerView, width, height int) string {
	cw := cardWidth(width)
	top := make(map[toast.Position]string)
	bottom := make(map[toast.Position]string)
	for _, c := range views {
		if len(c.Toasts) == 0 {
			continue
		}
		if c.Position.IsBottom() {
			bottom[c.Position] = renderColumn(c, cw)
		} else {
			top[c.Position] = renderColumn(c, cw)
		}
	}

	topBand := renderBand(top, toast.TopLeft, toast.TopCenter, toast.TopRight, width, cw, lipgloss.Top)
	bottomBand := renderBand(bottom, toast.BottomLeft, toast.BottomCenter, toast.BottomRight, width, cw, lipgloss.Bottom)

	var lines []string
	if topBand != "" {
		lines = strings.Split(topBand, "\n")
	}
	var bottomLines []string
	if bottomBand != "" {
		bottomLines = strings.Split(bottomBand, "\n")
	}
	if gap := height - len(lines) - len(bottomLines); gap > 0 {
		lines = append(lines, make([]string, gap)...)
	}
	lines = append(lines, bottomLines...)
	return strings.Join(lines, "\n")
}
