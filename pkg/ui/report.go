package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/types"
	"github.com/olekukonko/tablewriter"
)

// jsonReport is the JSON shape of a report; failures carry their message
type jsonReport struct {
	*types.Report
	OK       bool          `json:"ok"`
	Failures []jsonFailure `json:"failures"`
}

type jsonFailure struct {
	Stage types.Stage `json:"stage"`
	Path  string      `json:"path"`
	Op    string      `json:"op"`
	Error string      `json:"error"`
}

// RenderReport writes the final summary of a run
func RenderReport(w io.Writer, report *types.Report, format Format) error {
	format = Resolve(format, w)
	if format == FormatJSON {
		return renderJSON(w, report)
	}

	s := newStyles(format)
	var buf bytes.Buffer

	if report.DryRun {
		fmt.Fprintln(&buf, s.Warning.Render("Dry run: nothing was written to disk."))
	}
	fmt.Fprintf(&buf, "%s %d directories, %d files, %d symlinks copied",
		s.Muted.Render("clone:"), report.Clone.Dirs, report.Clone.Files, report.Clone.Symlinks)
	if report.Clone.Skipped > 0 {
		fmt.Fprintf(&buf, ", %d skipped", report.Clone.Skipped)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "%s %d of %d rewritten (%d replacements)\n",
		s.Muted.Render("descriptors:"), report.Descriptors.Rewritten, report.Descriptors.Matched, report.Descriptors.Replacements)
	fmt.Fprintf(&buf, "%s %d of %d rewritten (%d replacements)\n",
		s.Muted.Render("sources:"), report.Sources.Rewritten, report.Sources.Matched, report.Sources.Replacements)
	for _, m := range report.Relocate.Moved {
		fmt.Fprintf(&buf, "%s %s -> %s\n", s.Muted.Render("relocated:"), m.From, m.To)
	}
	for _, m := range report.Relocate.Missing {
		fmt.Fprintf(&buf, "%s %s\n", s.Warning.Render("not found:"), m)
	}

	if len(report.Failures) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, s.Error.Render(fmt.Sprintf("%d item(s) could not be processed:", len(report.Failures))))
		renderFailureTable(&buf, report.Failures)
	}

	if report.Promoted {
		fmt.Fprintln(&buf)
		verb := "created"
		if report.DryRun {
			verb = "would be created"
		}
		fmt.Fprintf(&buf, "%s %s\n", s.Success.Render("New project "+verb+" at"), s.Path.Render(report.Target))
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func renderFailureTable(w io.Writer, failures []types.Failure) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Stage", "Op", "Path", "Error"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	for _, f := range failures {
		table.Append([]string{string(f.Stage), f.Op, f.Path, f.Message()})
	}
	table.Render()
}

func renderJSON(w io.Writer, report *types.Report) error {
	out := jsonReport{Report: report, OK: report.OK(), Failures: []jsonFailure{}}
	for _, f := range report.Failures {
		out.Failures = append(out.Failures, jsonFailure{Stage: f.Stage, Path: f.Path, Op: f.Op, Error: f.Message()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// RenderError writes a fatal error in the requested format
func RenderError(w io.Writer, err error, format Format) error {
	format = Resolve(format, w)
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"ok":      false,
			"code":    errors.GetErrorCode(err),
			"error":   err.Error(),
			"details": errors.GetErrorDetails(err),
		})
	}
	s := newStyles(format)
	_, werr := fmt.Fprintf(w, "%s %v\n", s.Error.Render("Error:"), err)
	return werr
}
