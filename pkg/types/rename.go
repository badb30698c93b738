package types

import (
	"path/filepath"
	"strings"
)

// RenameConfig holds the old and new project coordinates for a single run.
type RenameConfig struct {
	OldGroup    string
	OldArtifact string
	OldPackage  string
	NewGroup    string
	NewArtifact string
	NewPackage  string
}

// MissingFields returns the names of the fields that are empty.
func (c RenameConfig) MissingFields() []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"old group", c.OldGroup},
		{"old artifact", c.OldArtifact},
		{"old package", c.OldPackage},
		{"new group", c.NewGroup},
		{"new artifact", c.NewArtifact},
		{"new package", c.NewPackage},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// PackageDir converts a dotted package identifier into a relative directory path.
func PackageDir(pkg string) string {
	return filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/"))
}
