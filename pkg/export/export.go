// Package export writes a session's remote memory as a PDF transcript.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	pdf "github.com/stephenafamo/goldmark-pdf"
	"github.com/yuin/goldmark"

	"github.com/anonivate/anoni/pkg/gateway"
	"github.com/anonivate/anoni/pkg/render"
)

// TranscriptMarkdown flattens remote memory into a markdown document.
// Assistant turns may carry HTML and are converted before inclusion.
func TranscriptMarkdown(mem *gateway.Memory, assistantName string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Conversation with %s\n\n", assistantName))
	sb.WriteString(fmt.Sprintf("Session `%s`, %d exchanges.\n\n", mem.SessionID, mem.Count))

	for _, entry := range mem.Messages {
		ts := time.Unix(int64(entry.Timestamp), 0).Format("2006-01-02 15:04")
		sb.WriteString(fmt.Sprintf("## You (%s)\n\n%s\n\n", ts, entry.User))
		sb.WriteString(fmt.Sprintf("## %s\n\n%s\n\n", assistantName, render.HTMLToMarkdown(entry.Assistant)))
	}

	return sb.String()
}

// WritePDF renders a markdown transcript as a PDF.
func WritePDF(w io.Writer, markdown string) error {
	md := goldmark.New(
		goldmark.WithRenderer(pdf.New()),
	)
	if err := md.Convert([]byte(markdown), w); err != nil {
		return fmt.Errorf("failed to render transcript PDF: %w", err)
	}
	return nil
}
