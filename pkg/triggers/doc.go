// Package triggers implements the file selectors used by the pipeline stages.
//
// Each trigger registers a factory with the registry package in init(), so
// stages build their selectors by name from configuration:
//
//   - filename: regular files whose base name equals a name or matches a glob
//     (build descriptors such as pom.xml)
//   - extension: regular files whose name ends with an extension (source files)
//   - pattern: files or directories whose base name or relative path matches
//     a glob (clone exclusions)
package triggers
