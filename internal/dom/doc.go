// Package dom is a small headless document model for the toast widget.
// It keeps the element tree, class lists, inline styles and event listeners
// of one page context, computes width transitions so a renderer can ask for
// the width an element shows at a given instant, and serializes to HTML.
package dom
