package triggers

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/retemplate/pkg/registry"
	"github.com/arthur-debert/retemplate/pkg/types"
)

// ExtensionTriggerName is the name used to reference this trigger
const ExtensionTriggerName = "extension"

// ExtensionTrigger matches regular files by the suffix of their name.
// The comparison is case-sensitive: ".java" does not select "App.JAVA".
type ExtensionTrigger struct {
	extension string
}

// NewExtensionTrigger creates a new ExtensionTrigger with the given options
func NewExtensionTrigger(options map[string]interface{}) (*ExtensionTrigger, error) {
	extension, ok := options["extension"].(string)
	if !ok || extension == "" {
		return nil, fmt.Errorf("extension trigger requires an 'extension' option")
	}

	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	return &ExtensionTrigger{extension: extension}, nil
}

// Name returns the name of this trigger
func (t *ExtensionTrigger) Name() string {
	return ExtensionTriggerName
}

// Description returns a human-readable description of this trigger
func (t *ExtensionTrigger) Description() string {
	return fmt.Sprintf("Matches files with extension '%s'", t.extension)
}

// Match checks if the given path matches this trigger's extension
func (t *ExtensionTrigger) Match(path string, info fs.FileInfo) (bool, map[string]interface{}) {
	if !info.Mode().IsRegular() {
		return false, nil
	}

	base := filepath.Base(path)
	if !strings.HasSuffix(base, t.extension) {
		return false, nil
	}

	return true, map[string]interface{}{
		"extension": t.extension,
		"basename":  strings.TrimSuffix(base, t.extension),
	}
}

// Priority returns the priority of this trigger
func (t *ExtensionTrigger) Priority() int {
	return 80
}

func init() {
	err := registry.RegisterTriggerFactory(ExtensionTriggerName, func(options map[string]interface{}) (types.Trigger, error) {
		return NewExtensionTrigger(options)
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register extension trigger: %v", err))
	}
}
