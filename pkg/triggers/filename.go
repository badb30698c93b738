package triggers

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/retemplate/pkg/logging"
	"github.com/arthur-debert/retemplate/pkg/registry"
	"github.com/arthur-debert/retemplate/pkg/types"
)

const (
	FileNameTriggerName     = "filename"
	FileNameTriggerPriority = 100
)

// FileNameTrigger matches files based on their name or glob pattern
type FileNameTrigger struct {
	pattern string
	isGlob  bool
}

// NewFileNameTrigger creates a new FileNameTrigger with the given pattern
func NewFileNameTrigger(pattern string) *FileNameTrigger {
	return &FileNameTrigger{
		pattern: pattern,
		isGlob:  containsGlobChars(pattern),
	}
}

// Name returns the unique name of this trigger
func (t *FileNameTrigger) Name() string {
	return FileNameTriggerName
}

// Description returns a human-readable description of what this trigger matches
func (t *FileNameTrigger) Description() string {
	if t.isGlob {
		return "Matches files by glob pattern: " + t.pattern
	}
	return "Matches files by exact name: " + t.pattern
}

// Match checks if the given file matches this trigger's pattern
func (t *FileNameTrigger) Match(path string, info fs.FileInfo) (bool, map[string]interface{}) {
	if !info.Mode().IsRegular() {
		return false, nil
	}

	logger := logging.GetLogger("triggers.filename")
	filename := filepath.Base(path)
	matched := filename == t.pattern
	if t.isGlob {
		var err error
		matched, err = filepath.Match(t.pattern, filename)
		if err != nil {
			logger.Error().
				Err(err).
				Str("pattern", t.pattern).
				Str("filename", filename).
				Msg("error matching glob pattern")
			return false, nil
		}
	}

	if !matched {
		return false, nil
	}

	logger.Trace().
		Str("pattern", t.pattern).
		Str("file", path).
		Msg("file matched trigger")

	return true, map[string]interface{}{
		"pattern":  t.pattern,
		"filename": filename,
		"is_glob":  t.isGlob,
	}
}

// Priority returns the priority of this trigger
func (t *FileNameTrigger) Priority() int {
	return FileNameTriggerPriority
}

// containsGlobChars checks if a pattern contains glob special characters
func containsGlobChars(pattern string) bool {
	for _, char := range pattern {
		switch char {
		case '*', '?', '[', ']':
			return true
		}
	}
	return false
}

func init() {
	err := registry.RegisterTriggerFactory(FileNameTriggerName, func(options map[string]interface{}) (types.Trigger, error) {
		pattern, ok := options["pattern"].(string)
		if !ok || pattern == "" {
			return nil, fmt.Errorf("filename trigger requires a 'pattern' option")
		}
		return NewFileNameTrigger(pattern), nil
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register filename trigger factory: %v", err))
	}
}
