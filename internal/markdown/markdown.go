// Package markdown renders RAML descriptions, which are Markdown, to HTML.
package markdown

import (
	"strings"

	"github.com/russross/blackfriday/v2"
)

// extensions are the blackfriday extensions enabled for descriptions: tables,
// fenced code, autolinks and strikethrough among others.
const extensions = blackfriday.CommonExtensions

// ToHTML renders Markdown text as an HTML fragment. Blank input renders as
// the empty string.
func ToHTML(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return string(blackfriday.Run([]byte(text), blackfriday.WithExtensions(extensions)))
}

// Passthrough returns text unchanged. It is the renderer used when Markdown
// rendering is disabled.
func Passthrough(text string) string {
	return text
}
