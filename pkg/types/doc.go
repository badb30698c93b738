// Package types defines the core types and interfaces used throughout retemplate.
// This includes the RenameConfig and ProjectPaths records resolved at startup,
// the Trigger interface used to select files, and the Failure/Report types the
// pipeline stages collect their results into.
package types
