package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"emphasis", "Hello *world*", []string{"<p>Hello <em>world</em></p>"}},
		{"heading", "# Users\n", []string{"<h1>Users</h1>"}},
		{"list", "- one\n- two\n", []string{"<ul>", "<li>one</li>", "<li>two</li>"}},
		{"fenced code", "```\nGET /users\n```\n", []string{"<pre><code>GET /users"}},
		{"link", "[docs](https://example.com)", []string{`<a href="https://example.com">docs</a>`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ToHTML(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestToHTML_Blank(t *testing.T) {
	assert.Empty(t, ToHTML(""))
	assert.Empty(t, ToHTML("  \n\t"))
}

func TestPassthrough(t *testing.T) {
	assert.Equal(t, "Hello *world*", Passthrough("Hello *world*"))
}
