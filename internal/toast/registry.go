package toast

import (
	"github.com/jmylchreest/toastui/internal/dom"
)

// StyleElementID is the id of the injected stylesheet element.
const StyleElementID = "toastui-styles"

// Class names shared with the stylesheets.
const (
	classContainer = "toast-container"
	classToast     = "toast"
	classIcon      = "toast-icon"
	classContent   = "toast-content"
	classClose     = "toast-close"
	classProgress  = "toast-progress"
	classRemoving  = "removing"
)

// Registry holds the per-page state of a Notifier: whether the stylesheet
// has been injected and the container of each position.
type Registry struct {
	doc            *dom.Document
	css            string
	stylesInjected bool
	containers     map[Position]*Container
}

// NewRegistry creates an empty registry for doc.
func NewRegistry(doc *dom.Document, css string) *Registry {
	return &Registry{
		doc:        doc,
		css:        css,
		containers: make(map[Position]*Container),
	}
}

// EnsureStyles injects the stylesheet into the document head. It is a no-op
// once the flag is set, even if the element was removed externally.
func (r *Registry) EnsureStyles() {
	if r.stylesInjected || r.doc == nil {
		return
	}
	style := r.doc.CreateElement("style")
	style.SetID(StyleElementID)
	style.SetInnerHTML(r.css)
	r.doc.Head.AppendChild(style)
	r.stylesInjected = true
}

// StylesInjected reports whether the stylesheet is in place.
func (r *Registry) StylesInjected() bool { return r.stylesInjected }

// Stylesheet returns the CSS the registry injects.
func (r *Registry) Stylesheet() string { return r.css }

// SetStylesheet replaces the CSS, updating the injected element if present.
func (r *Registry) SetStylesheet(css string) {
	r.css = css
	if !r.stylesInjected || r.doc == nil {
		return
	}
	if el := r.doc.GetElementByID(StyleElementID); el != nil {
		el.SetInnerHTML(css)
	}
}

// Container returns the container for pos, creating and attaching it to
// the body on first use.
func (r *Registry) Container(pos Position) *Container {
	if c, ok := r.containers[pos]; ok {
		return c
	}
	el := r.doc.CreateElement("div")
	el.SetClassName(classContainer + " " + string(pos))
	r.doc.Body.AppendChild(el)

	c := &Container{position: pos, el: el}
	r.containers[pos] = c
	return c
}

// Lookup returns the container for pos if one exists.
func (r *Registry) Lookup(pos Position) (*Container, bool) {
	c, ok := r.containers[pos]
	return c, ok
}

// Containers returns existing containers in layout order.
func (r *Registry) Containers() []*Container {
	out := make([]*Container, 0, len(r.containers))
	for _, pos := range ValidPositions() {
		if c, ok := r.containers[pos]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Teardown detaches every container and the stylesheet and resets the
// registry to its initial state.
func (r *Registry) Teardown() {
	for _, c := range r.containers {
		c.el.Remove()
	}
	clear(r.containers)
	if r.doc != nil {
		if el := r.doc.GetElementByID(StyleElementID); el != nil {
			el.Remove()
		}
	}
	r.stylesInjected = false
}

// Container stacks the toasts of one position. Insertion order is
// preserved; the stylesheet reverses the visual order for bottom anchors.
type Container struct {
	position Position
	el       *dom.Element
	toasts   []*Toast
}

// Position returns the anchor of the container.
func (c *Container) Position() Position { return c.position }

// Element returns the container element.
func (c *Container) Element() *dom.Element { return c.el }

// Toasts returns the toasts currently attached, oldest first.
func (c *Container) Toasts() []*Toast {
	out := make([]*Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Len returns the number of attached toasts.
func (c *Container) Len() int { return len(c.toasts) }

func (c *Container) attach(t *Toast) {
	c.el.AppendChild(t.el)
	c.toasts = append(c.toasts, t)
}

func (c *Container) detach(t *Toast) {
	t.el.Remove()
	for i, other := range c.toasts {
		if other == t {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}
