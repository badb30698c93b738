package showconfig

// Message constants
const (
	MsgShort   = "Print the effective configuration"
	MsgLong    = "Print the configuration a run would use, after merging the defaults, the\nuser and project files, the environment and the given flags."
	MsgExample = `  retemplate config
  retemplate config --format json --new-group org.acme`
	MsgFlagFormat = "Output format (toml, yaml, json)"
)
