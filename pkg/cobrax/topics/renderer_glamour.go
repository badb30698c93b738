package topics

import (
	"github.com/charmbracelet/glamour"
)

// defaultWrap keeps topic text readable on wide terminals
const defaultWrap = 80

// GlamourRenderer renders markdown topics for the terminal
type GlamourRenderer struct {
	// Style is a glamour style name or path; empty picks dark or light
	// from the terminal background
	Style string

	// Width wraps rendered text, 0 disables wrapping
	Width int
}

// NewGlamourRenderer creates a renderer with automatic style and 80 column wrapping
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Width: defaultWrap}
}

// Render formats markdown content; other formats and rendering errors
// return the content unchanged
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	options := []glamour.TermRendererOption{glamour.WithWordWrap(r.Width)}
	if r.Style == "" {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStylePath(r.Style))
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
