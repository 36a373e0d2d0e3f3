package tui

import "github.com/jmylchreest/toastui/internal/toast"

// Card geometry in terminal cells.
const (
	maxCardWidth = 40
	minCardWidth = 12
	borderSize   = 1
	paddingSize  = 1
)

// Region is the part of a card under the pointer.
type Region int

const (
	RegionNone Region = iota
	RegionBody
	RegionClose
)

// Box is the screen rectangle of one toast card.
type Box struct {
	ID       string
	Position toast.Position
	X, Y     int
	W, H     int
	Closable bool
}

// Contains reports whether the cell (x, y) lies inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// closeX is the column of the close control on the first content row.
func (b Box) closeX() int {
	return b.X + b.W - borderSize - paddingSize - 1
}

// Region returns the part of the box at (x, y). The close control accepts
// a one cell margin on either side.
func (b Box) Region(x, y int) Region {
	if !b.Contains(x, y) {
		return RegionNone
	}
	if b.Closable && y == b.Y+borderSize {
		if d := x - b.closeX(); d >= -1 && d <= 1 {
			return RegionClose
		}
	}
	return RegionBody
}

// cardWidth returns the width of every card on a canvas of the given width.
func cardWidth(width int) int {
	w := width / 3
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}

// cardHeight returns the rows a card needs: one message row, a progress row
// when auto-dismissing, and the border.
func cardHeight(v toast.View) int {
	h := 1 + 2*borderSize
	if v.HasProgress {
		h++
	}
	return h
}

// columnX returns the left edge of a card at pos.
func columnX(pos toast.Position, width, cw int) int {
	switch pos {
	case toast.TopLeft, toast.BottomLeft:
		return 0
	case toast.TopCenter, toast.BottomCenter:
		return (width - cw) / 2
	default:
		x := width - cw
		if x < 0 {
			x = 0
		}
		return x
	}
}

// isNarrow reports whether three columns do not fit side by side. The
// columns of each edge are then stacked left, center, right at column 0.
func isNarrow(width, cw int) bool {
	return width < 3*cw
}

// Layout places every toast of views on a width x height canvas. views must
// be in layout order, as returned by Notifier.Snapshot. Top anchors stack
// downward from the first row in insertion order; bottom anchors stack
// upward from the last row, so the oldest toast sits at the bottom edge.
func Layout(views []toast.ContainerView, width, height int) []Box {
	cw := cardWidth(width)
	narrow := isNarrow(width, cw)

	bottomTotal := 0
	for _, c := range views {
		if c.Position.IsBottom() {
			bottomTotal += columnHeight(c)
		}
	}
	topY, bandY := 0, height-bottomTotal

	var boxes []Box
	for _, c := range views {
		x := columnX(c.Position, width, cw)
		if narrow {
			x = 0
		}
		colH := columnHeight(c)

		if c.Position.IsBottom() {
			y := height
			if narrow {
				y = bandY + colH
				bandY += colH
			}
			for _, v := range c.Toasts {
				h := cardHeight(v)
				y -= h
				boxes = append(boxes, Box{ID: v.ID, Position: c.Position, X: x, Y: y, W: cw, H: h, Closable: v.Closable})
			}
			continue
		}

		y := 0
		if narrow {
			y = topY
			topY += colH
		}
		for _, v := range c.Toasts {
			h := cardHeight(v)
			boxes = append(boxes, Box{ID: v.ID, Position: c.Position, X: x, Y: y, W: cw, H: h, Closable: v.Closable})
			y += h
		}
	}
	return boxes
}

func columnHeight(c toast.ContainerView) int {
	h := 0
	for _, v := range c.Toasts {
		h += cardHeight(v)
	}
	return h
}

// HitTest returns the topmost box at (x, y). Later boxes are drawn over
// earlier ones.
func HitTest(boxes []Box, x, y int) (Box, Region) {
	for i := len(boxes) - 1; i >= 0; i-- {
		if r := boxes[i].Region(x, y); r != RegionNone {
			return boxes[i], r
		}
	}
	return Box{}, RegionNone
}
