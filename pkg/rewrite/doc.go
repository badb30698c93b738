// Package rewrite edits project files in place.
//
// Two rewriters share one walk:
//
//   - RewriteDescriptors updates group and artifact identifiers in build
//     descriptors (pom.xml), either by plain replacement of the tagged values
//     or structurally through an XML tree.
//   - RewriteSources replaces the package identifier in source files, either
//     everywhere or only where it stands as a whole token.
//
// Files are selected with triggers from the registry. A file without a match
// is never written, so its modification time is preserved. Per-file errors
// are collected and the walk continues.
package rewrite
