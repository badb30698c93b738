package types

import "fmt"

// Stage identifies a step of the pipeline
type Stage string

const (
	StageClone      Stage = "clone"
	StageDescriptor Stage = "descriptor"
	StageText       Stage = "text"
	StageRelocate   Stage = "relocate"
	StagePromote    Stage = "promote"
)

// Stages lists the pipeline steps in execution order
var Stages = []Stage{StageClone, StageDescriptor, StageText, StageRelocate, StagePromote}

// Failure is a single unit of work that was skipped because of an error.
// Path is relative to the root of the tree being processed.
type Failure struct {
	Stage Stage  `json:"stage"`
	Path  string `json:"path"`
	Op    string `json:"op"`
	Err   error  `json:"-"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", f.Stage, f.Op, f.Path, f.Err)
}

// Message returns the underlying error text, empty when there is none.
func (f Failure) Message() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// CloneStats counts what the clone stage produced
type CloneStats struct {
	Dirs     int `json:"dirs"`
	Files    int `json:"files"`
	Symlinks int `json:"symlinks"`
	Skipped  int `json:"skipped"`
}

// RewriteStats counts the files a rewriter visited and changed
type RewriteStats struct {
	Matched      int `json:"matched"`
	Rewritten    int `json:"rewritten"`
	Replacements int `json:"replacements"`
}

// RelocateStats records the package directory moves
type RelocateStats struct {
	Moved   []Move   `json:"moved,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Pruned  []string `json:"pruned,omitempty"`
}

// Move is one directory relocation, both paths relative to the tree root
type Move struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Report is the outcome of a full pipeline run
type Report struct {
	Source      string        `json:"source"`
	Target      string        `json:"target"`
	DryRun      bool          `json:"dry_run"`
	Promoted    bool          `json:"promoted"`
	Clone       CloneStats    `json:"clone"`
	Descriptors RewriteStats  `json:"descriptors"`
	Sources     RewriteStats  `json:"sources"`
	Relocate    RelocateStats `json:"relocate"`
	Failures    []Failure     `json:"-"`
}

// OK reports whether the run completed without any skipped work
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// AddFailures appends failures in the order they were collected
func (r *Report) AddFailures(failures ...Failure) {
	r.Failures = append(r.Failures, failures...)
}

// FailuresFor returns the failures collected by one stage
func (r *Report) FailuresFor(stage Stage) []Failure {
	var out []Failure
	for _, f := range r.Failures {
		if f.Stage == stage {
			out = append(out, f)
		}
	}
	return out
}
