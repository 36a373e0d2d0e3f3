package dom

import (
	"html"
	"maps"
	"slices"
	"strings"
)

// Document is one page context: an html root with head and body.
type Document struct {
	root *Element
	Head *Element
	Body *Element
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	d := &Document{
		root: newElement("html"),
		Head: newElement("head"),
		Body: newElement("body"),
	}
	d.root.AppendChild(d.Head)
	d.root.AppendChild(d.Body)
	return d
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Element {
	return newElement(tag)
}

// GetElementByID returns the first connected element with the given id.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	d.root.walk(func(e *Element) bool {
		if e.id == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// ElementsByClass returns connected elements carrying class, in tree order.
func (d *Document) ElementsByClass(class string) []*Element {
	var out []*Element
	d.root.walk(func(e *Element) bool {
		if e.HasClass(class) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Render serializes the whole document to HTML.
func (d *Document) Render() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>")
	writeElement(&b, d.root)
	return b.String()
}

// RenderElement serializes a single element subtree to HTML.
func RenderElement(e *Element) string {
	var b strings.Builder
	writeElement(&b, e)
	return b.String()
}

func writeElement(b *strings.Builder, e *Element) {
	b.WriteByte('<')
	b.WriteString(e.Tag)
	if e.id != "" {
		writeAttr(b, "id", e.id)
	}
	if len(e.classes) > 0 {
		writeAttr(b, "class", e.ClassName())
	}
	for _, k := range slices.Sorted(maps.Keys(e.attrs)) {
		writeAttr(b, k, e.attrs[k])
	}
	if len(e.style) > 0 {
		parts := make([]string, 0, len(e.style))
		for _, k := range slices.Sorted(maps.Keys(e.style)) {
			parts = append(parts, k+": "+e.style[k])
		}
		writeAttr(b, "style", strings.Join(parts, "; "))
	}
	b.WriteByte('>')

	b.WriteString(html.EscapeString(e.text))
	b.WriteString(e.innerHTML)
	for _, c := range e.children {
		writeElement(b, c)
	}

	b.WriteString("</")
	b.WriteString(e.Tag)
	b.WriteByte('>')
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
}
