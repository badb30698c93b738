// Package core runs the retemplate pipeline.
//
// A run resolves the source and target directories, refuses to start when
// the target already exists and then executes four stages strictly in order:
//
//  1. clone the source tree
//  2. rewrite the build descriptors
//  3. rewrite the package identifier in sources
//  4. relocate the package directory
//
// # Staging
//
// By default the stages work inside a hidden sibling of the target named
// .<target>.staging-<random>. Only after every stage finished is the staged
// tree renamed to the target, so an aborted run never leaves a half-written
// project behind under the target name. With staging disabled the stages
// write to the target directly.
//
// # Failures
//
// Stages collect per-file failures in the report and keep going. In strict
// mode the first stage that collected a failure aborts the run, the partial
// output is discarded and the error carries the STAGE_FAILED code.
//
// # Dry runs
//
// A dry run layers an in-memory filesystem over a read-only view of the real
// one. The whole pipeline runs and reports what it would do; all writes land
// in memory.
package core
