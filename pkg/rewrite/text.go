package rewrite

import (
	"bytes"
	"context"

	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/logging"
	"github.com/arthur-debert/retemplate/pkg/triggers"
	"github.com/arthur-debert/retemplate/pkg/types"
	"github.com/spf13/afero"
)

// SourceOptions configures RewriteSources
type SourceOptions struct {
	// Extensions select source files by case-sensitive suffix
	Extensions []string
	Mode       Mode
	Progress   types.Progress
}

// RewriteSources replaces the old package identifier with the new one in
// every source file below root.
func RewriteSources(ctx context.Context, fsys afero.Fs, root string, rc types.RenameConfig, opts SourceOptions) (*Result, error) {
	logger := logging.GetLogger("rewrite")
	if opts.Mode == "" {
		opts.Mode = Literal
	}

	var fn rewriteFunc
	switch opts.Mode {
	case Literal:
		fn = func(data []byte) ([]byte, int, error) {
			out, n := ReplaceLiteral(data, []byte(rc.OldPackage), []byte(rc.NewPackage))
			return out, n, nil
		}
	case Token:
		fn = func(data []byte) ([]byte, int, error) {
			out, n := ReplaceToken(data, []byte(rc.OldPackage), []byte(rc.NewPackage))
			return out, n, nil
		}
	default:
		return nil, errors.Newf(errors.ErrConfigValid, "unknown source mode %q", opts.Mode)
	}

	trigs, err := buildTriggers(triggers.ExtensionTriggerName, "extension", opts.Extensions)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:      ctx,
		fs:       fsys,
		root:     root,
		stage:    types.StageText,
		triggers: trigs,
		progress: types.ProgressOrNop(opts.Progress),
		result:   &Result{},
	}
	w.progress.StageStarted(types.StageText)
	done := logging.LogOperationStart(logger, "rewrite sources")
	defer done()

	if err := w.run(fn); err != nil {
		return w.result, err
	}
	return w.result, nil
}

// ReplaceLiteral replaces every occurrence of old and returns the count.
// Identical old and new values count as no replacement.
func ReplaceLiteral(data, old, repl []byte) ([]byte, int) {
	if len(old) == 0 || bytes.Equal(old, repl) {
		return data, 0
	}
	n := bytes.Count(data, old)
	if n == 0 {
		return data, 0
	}
	return bytes.ReplaceAll(data, old, repl), n
}

// ReplaceToken replaces occurrences of old that are not part of a longer
// identifier: the byte before must not be an identifier byte or '.', the
// byte after must not be an identifier byte. A following '.' is allowed so
// sub-packages are renamed along with their parent.
func ReplaceToken(data, old, repl []byte) ([]byte, int) {
	if len(old) == 0 || bytes.Equal(old, repl) {
		return data, 0
	}

	var buf bytes.Buffer
	count, last, pos := 0, 0, 0
	for {
		i := bytes.Index(data[pos:], old)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(old)

		before := start == 0 || !(isIdentByte(data[start-1]) || data[start-1] == '.')
		after := end == len(data) || !isIdentByte(data[end])
		if before && after {
			buf.Write(data[last:start])
			buf.Write(repl)
			last = end
			pos = end
			count++
			continue
		}
		pos = start + 1
	}

	if count == 0 {
		return data, 0
	}
	buf.Write(data[last:])
	return buf.Bytes(), count
}

// isIdentByte reports whether b can be part of a Java identifier. Bytes of
// multi-byte UTF-8 sequences count as identifier bytes.
func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9') ||
		b >= 0x80
}
