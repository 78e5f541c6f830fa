package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	markdownRenderer     *glamour.TermRenderer
	markdownRendererOnce sync.Once
)

// renderMarkdown renders a task description for the expanded detail view.
// Falls back to the raw text when the renderer cannot be built.
func renderMarkdown(text string, width int) string {
	markdownRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			markdownRenderer = r
		}
	})

	if markdownRenderer == nil {
		return text
	}
	out, err := markdownRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
