// Package filesystem provides the afero filesystems retemplate runs against
// and the small helpers afero leaves to the caller: lstat, symlink access,
// existence checks, file copies and path containment.
//
// Production runs use the OS filesystem, tests use the in-memory one and
// dry runs use a copy-on-write overlay whose writes never reach disk.
package filesystem
