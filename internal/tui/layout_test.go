package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/toast"
)

func view(id string, progress, closable bool) toast.View {
	return toast.View{ID: id, HasProgress: progress, Closable: closable}
}

func TestCardWidth(t *testing.T) {
	assert.Equal(t, 40, cardWidth(200))
	assert.Equal(t, 30, cardWidth(90))
	assert.Equal(t, 12, cardWidth(20))
}

func TestLayout_TopAnchorsStackDownward(t *testing.T) {
	boxes := Layout([]toast.ContainerView{
		{Position: toast.TopRight, Toasts: []toast.View{view("a", true, true), view("b", false, true)}},
	}, 120, 40)

	require.Len(t, boxes, 2)
	assert.Equal(t, Box{ID: "a", Position: toast.TopRight, X: 80, Y: 0, W: 40, H: 4, Closable: true}, boxes[0])
	assert.Equal(t, Box{ID: "b", Position: toast.TopRight, X: 80, Y: 4, W: 40, H: 3, Closable: true}, boxes[1])
}

func TestLayout_BottomAnchorsStackUpward(t *testing.T) {
	boxes := Layout([]toast.ContainerView{
		{Position: toast.BottomLeft, Toasts: []toast.View{view("old", true, false), view("new", true, false)}},
		{Position: toast.BottomCenter, Toasts: []toast.View{view("mid", false, false)}},
	}, 120, 40)

	require.Len(t, boxes, 3)
	assert.Equal(t, 0, boxes[0].X)
	assert.Equal(t, 36, boxes[0].Y, "oldest toast sits on the bottom edge")
	assert.Equal(t, 32, boxes[1].Y)
	assert.Equal(t, 40, boxes[2].X)
	assert.Equal(t, 37, boxes[2].Y)
}

func TestLayout_NarrowStacksColumns(t *testing.T) {
	boxes := Layout([]toast.ContainerView{
		{Position: toast.TopLeft, Toasts: []toast.View{view("tl", false, false)}},
		{Position: toast.TopRight, Toasts: []toast.View{view("tr", false, false)}},
		{Position: toast.BottomLeft, Toasts: []toast.View{view("bl", false, false)}},
		{Position: toast.BottomRight, Toasts: []toast.View{view("br", true, false)}},
	}, 30, 20)

	require.Len(t, boxes, 4)
	for _, b := range boxes {
		assert.Equal(t, 0, b.X)
		assert.Equal(t, 12, b.W)
	}
	assert.Equal(t, 0, boxes[0].Y)
	assert.Equal(t, 3, boxes[1].Y)
	assert.Equal(t, 13, boxes[2].Y)
	assert.Equal(t, 16, boxes[3].Y)
}

func TestLayout_SkipsEmptyContainers(t *testing.T) {
	assert.Empty(t, Layout([]toast.ContainerView{{Position: toast.TopLeft}}, 120, 40))
	assert.Empty(t, Layout(nil, 120, 40))
}

func TestBox_Region(t *testing.T) {
	b := Box{X: 80, Y: 0, W: 40, H: 4, Closable: true}

	assert.Equal(t, RegionClose, b.Region(117, 1))
	assert.Equal(t, RegionClose, b.Region(116, 1))
	assert.Equal(t, RegionClose, b.Region(118, 1))
	assert.Equal(t, RegionBody, b.Region(115, 1))
	assert.Equal(t, RegionBody, b.Region(117, 2))
	assert.Equal(t, RegionBody, b.Region(80, 0))
	assert.Equal(t, RegionNone, b.Region(79, 0))
	assert.Equal(t, RegionNone, b.Region(100, 4))

	b.Closable = false
	assert.Equal(t, RegionBody, b.Region(117, 1))
}

func TestHitTest(t *testing.T) {
	boxes := []Box{
		{ID: "under", X: 0, Y: 0, W: 12, H: 3},
		{ID: "over", X: 5, Y: 1, W: 12, H: 3},
	}

	b, r := HitTest(boxes, 6, 2)
	assert.Equal(t, "over", b.ID)
	assert.Equal(t, RegionBody, r)

	b, _ = HitTest(boxes, 1, 1)
	assert.Equal(t, "under", b.ID)

	_, r = HitTest(boxes, 50, 50)
	assert.Equal(t, RegionNone, r)
}
