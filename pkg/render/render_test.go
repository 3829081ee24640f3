package render

import (
	"strings"
	"testing"
)

// TestHTMLToMarkdown tests conversion of the tags the backend actually emits
func TestHTMLToMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "bold",
			input:    "<p>this is <strong>important</strong></p>",
			contains: "**important**",
		},
		{
			name:     "link",
			input:    `<a href="https://example.com">docs</a>`,
			contains: "[docs](https://example.com)",
		},
		{
			name:     "list",
			input:    "<ul><li>one</li><li>two</li></ul>",
			contains: "- one",
		},
		{
			name:     "plain text passes through",
			input:    "just words",
			contains: "just words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTMLToMarkdown(tt.input)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("HTMLToMarkdown(%q) = %q, expected it to contain %q", tt.input, got, tt.contains)
			}
		})
	}
}

// TestMarkdownNilRendererFallsBack tests that a nil renderer returns the
// input unchanged instead of panicking
func TestMarkdownNilRendererFallsBack(t *testing.T) {
	var r *Renderer
	if got := r.Markdown("**hello**"); got != "**hello**" {
		t.Errorf("Expected input back from nil renderer, got %q", got)
	}

	empty := &Renderer{}
	if got := empty.Markdown("**hello**"); got != "**hello**" {
		t.Errorf("Expected input back from zero renderer, got %q", got)
	}
}

// TestReplyKeepsContent tests that a rendered reply still carries the text
func TestReplyKeepsContent(t *testing.T) {
	r, err := New(80)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	out := r.Reply("<p>hello <strong>world</strong></p>")
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Errorf("Reply lost content: %q", out)
	}
}
