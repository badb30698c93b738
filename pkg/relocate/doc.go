// Package relocate moves the package directory of a Java style source tree
// from the old package path to the new one.
package relocate
