package dom

import (
	"html"
	"slices"
	"strings"
)

// Listener handles an event dispatched on an element.
type Listener func(ev *Event)

// Element is a node in the document tree.
type Element struct {
	Tag string

	id        string
	classes   []string
	attrs     map[string]string
	style     map[string]string
	text      string
	innerHTML string
	children  []*Element
	parent    *Element
	listeners map[string][]Listener
	width     *widthState
}

func newElement(tag string) *Element {
	return &Element{
		Tag:   strings.ToLower(tag),
		attrs: make(map[string]string),
		style: make(map[string]string),
	}
}

// ID returns the element id.
func (e *Element) ID() string { return e.id }

// SetID sets the element id.
func (e *Element) SetID(id string) { e.id = id }

// ClassName returns the space separated class list.
func (e *Element) ClassName() string { return strings.Join(e.classes, " ") }

// SetClassName replaces the class list with the fields of s.
func (e *Element) SetClassName(s string) {
	e.classes = e.classes[:0]
	for _, c := range strings.Fields(s) {
		e.AddClass(c)
	}
}

// Classes returns a copy of the class list.
func (e *Element) Classes() []string { return slices.Clone(e.classes) }

// AddClass adds class names that are not already present.
func (e *Element) AddClass(names ...string) {
	for _, name := range names {
		if name != "" && !e.HasClass(name) {
			e.classes = append(e.classes, name)
		}
	}
}

// RemoveClass removes a class name.
func (e *Element) RemoveClass(name string) {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == name })
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// SetAttribute sets an attribute value.
func (e *Element) SetAttribute(name, value string) { e.attrs[name] = value }

// Attribute returns an attribute value.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetStyle sets an inline style property.
func (e *Element) SetStyle(property, value string) { e.style[property] = value }

// Style returns an inline style property, or "" when unset.
func (e *Element) Style(property string) string { return e.style[property] }

// RemoveStyle removes an inline style property.
func (e *Element) RemoveStyle(property string) { delete(e.style, property) }

// SetText replaces the element's content with a text node.
// The text is escaped when the document is rendered.
func (e *Element) SetText(text string) {
	e.detachChildren()
	e.innerHTML = ""
	e.text = text
}

// SetInnerHTML replaces the element's content with raw markup.
// The markup is emitted verbatim when rendered and is not parsed.
func (e *Element) SetInnerHTML(markup string) {
	e.detachChildren()
	e.text = ""
	e.innerHTML = markup
}

// InnerHTML returns the raw markup set with SetInnerHTML.
func (e *Element) InnerHTML() string { return e.innerHTML }

// TextContent returns the text of the element and its descendants.
// Raw markup contributes its entity-decoded form.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	b.WriteString(e.text)
	if e.innerHTML != "" {
		b.WriteString(html.UnescapeString(e.innerHTML))
	}
	for _, c := range e.children {
		c.writeText(b)
	}
}

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// AppendChild appends child, detaching it from any previous parent first.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	child.Remove()
	e.text = ""
	e.innerHTML = ""
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child if it is a direct child of e.
func (e *Element) RemoveChild(child *Element) bool {
	idx := slices.Index(e.children, child)
	if idx < 0 {
		return false
	}
	e.children = slices.Delete(e.children, idx, idx+1)
	child.parent = nil
	return true
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

func (e *Element) detachChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == e {
			return true
		}
	}
	return false
}

// QuerySelectorByClass returns the first descendant carrying class.
func (e *Element) QuerySelectorByClass(class string) *Element {
	for _, c := range e.children {
		if c.HasClass(class) {
			return c
		}
		if found := c.QuerySelectorByClass(class); found != nil {
			return found
		}
	}
	return nil
}

func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// AddEventListener registers fn for events of the given type.
func (e *Element) AddEventListener(eventType string, fn Listener) {
	if fn == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], fn)
}

// Dispatch delivers ev to e and, for bubbling events, to its ancestors
// until a listener stops propagation.
func (e *Element) Dispatch(ev *Event) {
	ev.Target = e
	for cur := e; cur != nil; cur = cur.parent {
		ev.CurrentTarget = cur
		for _, fn := range slices.Clone(cur.listeners[ev.Type]) {
			fn(ev)
		}
		if ev.stopped || !ev.Bubbles() {
			return
		}
	}
}
