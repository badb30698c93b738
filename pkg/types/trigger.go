package types

import "io/fs"

// Trigger is an interface for pattern-matching engines that select files
// inside the project tree. When a trigger finds a match, it returns
// metadata about what was found.
type Trigger interface {
	// Name returns the unique name of this trigger
	Name() string

	// Description returns a human-readable description of what this trigger matches
	Description() string

	// Match checks if the given file or directory matches this trigger's pattern
	// It returns true if the file matches, along with any extracted metadata
	Match(path string, info fs.FileInfo) (bool, map[string]interface{})

	// Priority returns the priority of this trigger (higher = evaluated first)
	Priority() int
}

// TriggerFactory creates a new Trigger instance with the given options
type TriggerFactory func(options map[string]interface{}) (Trigger, error)

// AnyMatch reports whether at least one of the triggers matches.
func AnyMatch(triggers []Trigger, path string, info fs.FileInfo) bool {
	for _, t := range triggers {
		if ok, _ := t.Match(path, info); ok {
			return true
		}
	}
	return false
}
