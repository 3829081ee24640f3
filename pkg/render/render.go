// Package render turns the backend's HTML-bearing replies into styled
// terminal output: HTML is converted to markdown, then rendered with
// glamour. The reply text itself is trusted as-is, matching the backend
// contract; conversion here is a display concern, not sanitization.
package render

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/glamour"
)

type Renderer struct {
	term *glamour.TermRenderer
}

func New(wordWrap int) (*Renderer, error) {
	term, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{term: term}, nil
}

// Reply renders a bot reply for the terminal. Every failure falls back to
// less-processed text; a reply is never dropped.
func (r *Renderer) Reply(html string) string {
	return r.Markdown(HTMLToMarkdown(html))
}

// Markdown renders markdown with panic recovery, returning the input
// unchanged when glamour cannot handle it.
func (r *Renderer) Markdown(content string) (result string) {
	defer func() {
		if rec := recover(); rec != nil {
			result = content
		}
	}()

	if r == nil || r.term == nil || content == "" {
		return content
	}
	rendered, err := r.term.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// HTMLToMarkdown converts server HTML to markdown, passing the input
// through untouched when conversion fails.
func HTMLToMarkdown(html string) string {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return html
	}
	return markdown
}
