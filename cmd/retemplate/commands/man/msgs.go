package man

// Message constants
const (
	MsgShort   = "Generate man pages"
	MsgLong    = "Generate one man page per command into the given directory.\n\nThe directory is created when it does not exist. Existing pages with the\nsame names are overwritten."
	MsgFlagDir = "Directory to write the man pages to"
	MsgWritten = "Man pages written to %s\n"
)
