package dom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_AppendAndLookup(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("DIV")
	el.SetID("box")
	el.SetClassName("a b  a")

	assert.Nil(t, doc.GetElementByID("box"), "detached elements are not found")

	doc.Body.AppendChild(el)
	require.Same(t, el, doc.GetElementByID("box"))
	assert.Equal(t, "div", el.Tag)
	assert.Equal(t, []string{"a", "b"}, el.Classes())
	assert.Len(t, doc.ElementsByClass("b"), 1)

	el.Remove()
	assert.Nil(t, el.Parent())
	assert.Nil(t, doc.GetElementByID("box"))
}

func TestElement_AppendChildReparents(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("div")
	b := doc.CreateElement("div")
	child := doc.CreateElement("span")

	a.AppendChild(child)
	b.AppendChild(child)

	assert.Empty(t, a.Children())
	assert.Equal(t, []*Element{child}, b.Children())
	assert.Same(t, b, child.Parent())
}

func TestElement_Classes(t *testing.T) {
	el := NewDocument().CreateElement("div")
	el.AddClass("x", "y", "x")
	assert.Equal(t, "x y", el.ClassName())

	el.RemoveClass("x")
	assert.False(t, el.HasClass("x"))
	assert.True(t, el.HasClass("y"))
}

func TestDispatch_Bubbles(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("button")
	parent.AppendChild(child)

	var order []string
	parent.AddEventListener(EventClick, func(ev *Event) {
		order = append(order, "parent")
		assert.Same(t, child, ev.Target)
		assert.Same(t, parent, ev.CurrentTarget)
	})
	child.AddEventListener(EventClick, func(ev *Event) { order = append(order, "child") })

	child.Dispatch(NewEvent(EventClick))
	assert.Equal(t, []string{"child", "parent"}, order)
}

func TestDispatch_StopPropagation(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("button")
	parent.AppendChild(child)

	parentCalls := 0
	parent.AddEventListener(EventClick, func(*Event) { parentCalls++ })
	child.AddEventListener(EventClick, func(ev *Event) { ev.StopPropagation() })

	ev := NewEvent(EventClick)
	child.Dispatch(ev)
	assert.True(t, ev.Stopped())
	assert.Equal(t, 0, parentCalls)
}

func TestDispatch_PointerEventsDoNotBubble(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("div")
	parent.AppendChild(child)

	parentCalls := 0
	parent.AddEventListener(EventMouseEnter, func(*Event) { parentCalls++ })
	child.Dispatch(NewEvent(EventMouseEnter))
	assert.Equal(t, 0, parentCalls)
}

func TestWidthTransition(t *testing.T) {
	el := NewDocument().CreateElement("div")
	start := time.Unix(1000, 0)

	assert.Equal(t, 100.0, el.RenderedWidth(start), "unset width fills the parent")

	el.TransitionWidth(100, 0, 4*time.Second, start)
	assert.Equal(t, "0%", el.Style("width"))
	assert.Equal(t, "width 4000ms linear", el.Style("transition"))

	assert.InDelta(t, 100.0, el.RenderedWidth(start), 0.001)
	assert.InDelta(t, 75.0, el.RenderedWidth(start.Add(time.Second)), 0.001)
	assert.InDelta(t, 0.0, el.RenderedWidth(start.Add(5*time.Second)), 0.001)

	pct := el.FreezeWidth(start.Add(2 * time.Second))
	assert.InDelta(t, 50.0, pct, 0.001)
	assert.Equal(t, "none", el.Style("transition"))
	assert.Equal(t, "50%", el.Style("width"))
	assert.InDelta(t, 50.0, el.RenderedWidth(start.Add(time.Hour)), 0.001, "frozen width does not shrink")
}

func TestRender_EscapesTextButNotMarkup(t *testing.T) {
	doc := NewDocument()
	text := doc.CreateElement("div")
	text.SetText("<b>&</b>")
	raw := doc.CreateElement("div")
	raw.SetInnerHTML("&lt;i&gt;")
	doc.Body.AppendChild(text)
	doc.Body.AppendChild(raw)

	out := doc.Render()
	assert.Contains(t, out, "<div>&lt;b&gt;&amp;&lt;/b&gt;</div>")
	assert.Contains(t, out, "<div>&lt;i&gt;</div>")
	assert.Equal(t, "<i>", raw.TextContent())
}

func TestRender_AttributesAndStyle(t *testing.T) {
	el := NewDocument().CreateElement("button")
	el.SetID("x")
	el.AddClass("close")
	el.SetAttribute("type", "button")
	el.SetAttribute("aria-label", `say "hi"`)
	el.SetStyle("width", "10%")
	el.SetStyle("color", "red")

	assert.Equal(t,
		`<button id="x" class="close" aria-label="say &#34;hi&#34;" type="button" style="color: red; width: 10%"></button>`,
		RenderElement(el))
}

func TestQuerySelectorByClass(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("div")
	leaf := doc.CreateElement("span")
	leaf.AddClass("target")
	inner.AppendChild(leaf)
	outer.AppendChild(inner)

	assert.Same(t, leaf, outer.QuerySelectorByClass("target"))
	assert.Nil(t, outer.QuerySelectorByClass("missing"))
	assert.True(t, outer.Contains(leaf))
	assert.False(t, leaf.Contains(outer))
}
