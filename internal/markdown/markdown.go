package markdown

import (
	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/vibequest/internal/logger"
)

// Render renders md for the terminal. A width of zero keeps
// glamour's default wrapping. The raw text is returned if rendering fails.
func Render(md string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		logger.Warn("Failed to create markdown renderer", "error", err)
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		logger.Warn("Failed to render markdown", "error", err)
		return md
	}
	return out
}
