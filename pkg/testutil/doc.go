// Package testutil provides helpers for testing retemplate stages.
//
// Key components:
//   - FileTree: declarative directory structure written onto any afero.Fs
//   - ReadTree: snapshot of a tree as relative path -> content, for exact comparisons
//   - FailingFs: afero.Fs wrapper that injects errors for chosen operations and paths
//   - Assert* helpers for file contents and existence
//
// Usage guidelines:
//   - Most tests run on afero.NewMemMapFs for speed and isolation
//   - Tests that need real symlinks or permissions use the OS fs under t.TempDir
//   - All test data is defined inline, not in external files
package testutil
