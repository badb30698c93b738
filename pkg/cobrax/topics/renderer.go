package topics

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Renderer defines the interface for rendering topic content
type Renderer interface {
	// Render takes raw content and returns formatted content for terminal display
	Render(content string, format string) string
}

// PlainRenderer is the default renderer that returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// RendererFor picks glamour for terminals and plain output otherwise, so
// piped help stays free of escape codes.
func RendererFor(w io.Writer) Renderer {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return &PlainRenderer{}
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return &PlainRenderer{}
	}
	return NewGlamourRenderer()
}
