package rewrite

import (
	"bytes"
	"context"
	"strings"

	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/logging"
	"github.com/arthur-debert/retemplate/pkg/triggers"
	"github.com/arthur-debert/retemplate/pkg/types"
	"github.com/beevik/etree"
	"github.com/spf13/afero"
)

// DescriptorOptions configures RewriteDescriptors
type DescriptorOptions struct {
	// Filenames are exact base names (or globs) of descriptor files
	Filenames []string
	Mode      Mode
	Progress  types.Progress
}

// RewriteDescriptors rewrites the group and artifact identifiers of every
// descriptor file below root. The error is only set when the walk cannot run
// at all or was cancelled.
func RewriteDescriptors(ctx context.Context, fsys afero.Fs, root string, rc types.RenameConfig, opts DescriptorOptions) (*Result, error) {
	logger := logging.GetLogger("rewrite")
	if opts.Mode == "" {
		opts.Mode = Literal
	}

	var fn rewriteFunc
	switch opts.Mode {
	case Literal:
		fn = literalDescriptor(rc)
	case XML:
		fn = xmlDescriptor(rc)
	default:
		return nil, errors.Newf(errors.ErrConfigValid, "unknown descriptor mode %q", opts.Mode)
	}

	trigs, err := buildTriggers(triggers.FileNameTriggerName, "pattern", opts.Filenames)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:      ctx,
		fs:       fsys,
		root:     root,
		stage:    types.StageDescriptor,
		triggers: trigs,
		progress: types.ProgressOrNop(opts.Progress),
		result:   &Result{},
	}
	w.progress.StageStarted(types.StageDescriptor)
	done := logging.LogOperationStart(logger, "rewrite descriptors")
	defer done()

	if err := w.run(fn); err != nil {
		return w.result, err
	}
	return w.result, nil
}

// literalDescriptor replaces the tagged identifiers as plain text, leaving
// every other byte of the file as it was.
func literalDescriptor(rc types.RenameConfig) rewriteFunc {
	pairs := [][2][]byte{
		{[]byte("<groupId>" + rc.OldGroup + "</groupId>"), []byte("<groupId>" + rc.NewGroup + "</groupId>")},
		{[]byte("<artifactId>" + rc.OldArtifact + "</artifactId>"), []byte("<artifactId>" + rc.NewArtifact + "</artifactId>")},
	}
	return func(data []byte) ([]byte, int, error) {
		total := 0
		for _, p := range pairs {
			if bytes.Equal(p[0], p[1]) {
				continue
			}
			n := bytes.Count(data, p[0])
			if n == 0 {
				continue
			}
			data = bytes.ReplaceAll(data, p[0], p[1])
			total += n
		}
		return data, total, nil
	}
}

// xmlDescriptor edits the project's own coordinates, its parent reference and
// dependencies on the old coordinates. Dependencies that only share the
// group are third-party artifacts and stay as they are.
func xmlDescriptor(rc types.RenameConfig) rewriteFunc {
	return func(data []byte) ([]byte, int, error) {
		doc := etree.NewDocument()
		doc.ReadSettings.PreserveCData = true
		if err := doc.ReadFromBytes(data); err != nil {
			return nil, 0, err
		}
		project := doc.SelectElement("project")
		if project == nil {
			return data, 0, nil
		}

		count := 0
		count += setIfEqual(project.SelectElement("groupId"), rc.OldGroup, rc.NewGroup)
		count += setIfEqual(project.SelectElement("artifactId"), rc.OldArtifact, rc.NewArtifact)

		refs := project.FindElements("./parent")
		refs = append(refs, project.FindElements("//dependency")...)
		refs = append(refs, project.FindElements("//exclusion")...)
		for _, ref := range refs {
			group, artifact := ref.SelectElement("groupId"), ref.SelectElement("artifactId")
			if !textEquals(group, rc.OldGroup) || !textEquals(artifact, rc.OldArtifact) {
				continue
			}
			count += setIfEqual(group, rc.OldGroup, rc.NewGroup)
			count += setIfEqual(artifact, rc.OldArtifact, rc.NewArtifact)
		}

		if count == 0 {
			return data, 0, nil
		}
		out, err := doc.WriteToBytes()
		if err != nil {
			return nil, 0, err
		}
		return out, count, nil
	}
}

func textEquals(el *etree.Element, value string) bool {
	return el != nil && strings.TrimSpace(el.Text()) == value
}

func setIfEqual(el *etree.Element, old, repl string) int {
	if !textEquals(el, old) || old == repl {
		return 0
	}
	el.SetText(repl)
	return 1
}
