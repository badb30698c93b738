package triggers

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/retemplate/pkg/logging"
	"github.com/arthur-debert/retemplate/pkg/registry"
	"github.com/arthur-debert/retemplate/pkg/types"
	"github.com/bmatcuk/doublestar"
)

// PatternTriggerName is the name used to reference this trigger
const PatternTriggerName = "pattern"

// PatternTrigger matches files and directories by glob. Patterns without a
// separator are matched against the base name, others against the slash
// separated relative path, where "**" spans any number of directories.
type PatternTrigger struct {
	pattern  string
	fullPath bool
}

// NewPatternTrigger creates a new PatternTrigger with the given options
func NewPatternTrigger(options map[string]interface{}) (*PatternTrigger, error) {
	pattern, ok := options["pattern"].(string)
	if !ok || pattern == "" {
		return nil, fmt.Errorf("pattern trigger requires a 'pattern' option")
	}
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	return &PatternTrigger{
		pattern:  pattern,
		fullPath: strings.Contains(pattern, "/"),
	}, nil
}

// Name returns the name of this trigger
func (t *PatternTrigger) Name() string {
	return PatternTriggerName
}

// Description returns a human-readable description of this trigger
func (t *PatternTrigger) Description() string {
	return fmt.Sprintf("Matches paths matching pattern '%s'", t.pattern)
}

// Match checks the relative path (or its base name) against the pattern
func (t *PatternTrigger) Match(path string, info fs.FileInfo) (bool, map[string]interface{}) {
	subject := filepath.Base(path)
	if t.fullPath {
		subject = filepath.ToSlash(path)
	}

	matched, err := doublestar.Match(t.pattern, subject)
	if err != nil || !matched {
		return false, nil
	}

	logger := logging.GetLogger("triggers.pattern")
	logger.Debug().
		Str("path", path).
		Str("pattern", t.pattern).
		Bool("isDir", info.IsDir()).
		Msg("path pattern matched")

	return true, map[string]interface{}{
		"pattern": t.pattern,
		"isDir":   info.IsDir(),
	}
}

// Priority returns the priority of this trigger
func (t *PatternTrigger) Priority() int {
	return 70
}

func init() {
	err := registry.RegisterTriggerFactory(PatternTriggerName, func(options map[string]interface{}) (types.Trigger, error) {
		return NewPatternTrigger(options)
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register pattern trigger: %v", err))
	}
}
