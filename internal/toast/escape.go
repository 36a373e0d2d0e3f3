package toast

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes text so it is never interpreted as markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
