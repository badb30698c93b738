package types

// ProjectPaths are the two absolute directories a run works with.
type ProjectPaths struct {
	// Source is the template project being copied
	Source string

	// Target is where the new project is written; it must not exist yet
	Target string
}
