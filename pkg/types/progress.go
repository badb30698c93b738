package types

// Progress receives pipeline events as they happen
type Progress interface {
	// StageStarted is called once before a stage does any work
	StageStarted(stage Stage)

	// FileChanged is called for each file a stage wrote or moved.
	// Count is the number of replacements, or zero when not applicable.
	FileChanged(stage Stage, path string, count int)

	// Warning reports a non-fatal condition that is not a Failure
	Warning(stage Stage, message string)
}

// NopProgress discards every event
type NopProgress struct{}

func (NopProgress) StageStarted(Stage)              {}
func (NopProgress) FileChanged(Stage, string, int) {}
func (NopProgress) Warning(Stage, string)          {}

// ProgressOrNop returns p, or a NopProgress when p is nil
func ProgressOrNop(p Progress) Progress {
	if p == nil {
		return NopProgress{}
	}
	return p
}
