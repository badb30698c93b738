package retemplate

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Create a new project from a Maven project template"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "retemplate %s (commit %s, built %s)\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig         = "Read the project configuration from this file instead of the template's"
	MsgFlagSource         = "Template directory (default: current directory)"
	MsgFlagTarget         = "Directory to create (default: source + suffix)"
	MsgFlagSuffix         = "Suffix appended to the source directory when no target is given"
	MsgFlagOldGroup       = "Group id used by the template"
	MsgFlagOldArtifact    = "Artifact id used by the template"
	MsgFlagOldPackage     = "Root package used by the template"
	MsgFlagNewGroup       = "Group id of the new project"
	MsgFlagNewArtifact    = "Artifact id of the new project"
	MsgFlagNewPackage     = "Root package of the new project"
	MsgFlagDescriptorMode = "How build descriptors are rewritten (literal, xml)"
	MsgFlagSourceMode     = "How source files are rewritten (literal, token)"
	MsgFlagSymlinks       = "What to do with symbolic links (preserve, follow, skip)"
	MsgFlagExclude        = "Do not copy entries matching this glob (repeatable)"
	MsgFlagSourceRoot     = "Directory holding package trees, relative to the project (repeatable)"
	MsgFlagPruneEmpty     = "Remove directories left empty by the package move"
	MsgFlagNoStaging      = "Build the project directly in the target directory"
	MsgFlagStrict         = "Abort and discard the new project when any file fails"
	MsgFlagDryRun         = "Report what would change without writing anything"
	MsgFlagFormat         = "Output format (auto, term, text, json)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
