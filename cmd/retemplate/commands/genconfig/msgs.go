package genconfig

// Message constants
const (
	MsgShort   = "Generate the default configuration file"
	MsgLong    = "Output the default configuration to stdout or write it to the template.\n\nWith -w the file is written as .retemplate.toml in the template directory\n(--source, or the current directory). An existing file is never replaced."
	MsgExample = `  retemplate gen-config                       # Output to stdout
  retemplate gen-config -w                    # Write to ./.retemplate.toml
  retemplate gen-config -w --source ~/tpl     # Write to ~/tpl/.retemplate.toml`
	MsgFlagWrite = "Write config to the template directory instead of stdout"
	MsgWritten   = "Wrote %s\n"
)
