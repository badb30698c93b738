package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/retemplate/pkg/types"
)

var stageTitles = map[types.Stage]string{
	types.StageClone:      "Cloning project",
	types.StageDescriptor: "Updating build descriptors",
	types.StageText:       "Updating package names",
	types.StageRelocate:   "Moving package directories",
	types.StagePromote:    "Finalizing",
}

// ConsoleProgress prints stage headers and changed files to out and warnings
// to errOut. In JSON format nothing is printed so stdout stays parseable.
type ConsoleProgress struct {
	out    io.Writer
	errOut io.Writer
	format Format
	styles styles
}

// NewConsoleProgress creates a progress printer. FormatAuto is resolved
// against out.
func NewConsoleProgress(out, errOut io.Writer, format Format) *ConsoleProgress {
	format = Resolve(format, out)
	return &ConsoleProgress{out: out, errOut: errOut, format: format, styles: newStyles(format)}
}

func (p *ConsoleProgress) StageStarted(stage types.Stage) {
	if p.format == FormatJSON {
		return
	}
	title, ok := stageTitles[stage]
	if !ok {
		title = string(stage)
	}
	_, _ = fmt.Fprintln(p.out, p.styles.Stage.Render(title+"..."))
}

func (p *ConsoleProgress) FileChanged(stage types.Stage, path string, count int) {
	if p.format == FormatJSON {
		return
	}
	verb := "modified"
	if stage == types.StageRelocate {
		verb = "moved to"
	}
	line := fmt.Sprintf("  %s %s", verb, p.styles.Path.Render(path))
	if count > 0 {
		line += p.styles.Muted.Render(fmt.Sprintf(" (%d)", count))
	}
	_, _ = fmt.Fprintln(p.out, line)
}

func (p *ConsoleProgress) Warning(_ types.Stage, message string) {
	if p.format == FormatJSON {
		return
	}
	_, _ = fmt.Fprintln(p.errOut, p.styles.Warning.Render("warning: "+message))
}
