// Package paths resolves the directories a retemplate run works with.
//
// The source directory defaults to the process working directory and the
// target to the source with a suffix appended ("-new"), both made absolute
// once at startup. The package also knows the XDG locations of the user
// configuration file.
//
// # Environment Variables
//
//   - RETEMPLATE_CONFIG_DIR: override the user config directory
//     (default: $XDG_CONFIG_HOME/retemplate)
package paths
