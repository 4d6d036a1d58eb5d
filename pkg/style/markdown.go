package style

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for terminal display using glamour.
type MarkdownRenderer struct {
	Style string // Style name: "dark", "light", "notty", "auto", or path to custom style
	Width int    // Terminal width (0 = auto-detect)
}

// NewMarkdownRenderer creates a markdown renderer with auto-detection.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		Style: "auto",
		Width: 0,
	}
}

// Render converts markdown to styled terminal output. Plain-text formats
// and renderer failures fall back to the raw content.
func (r *MarkdownRenderer) Render(content string, format Format) string {
	if format != FormatTerminal {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
