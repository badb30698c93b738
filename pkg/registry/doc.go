// Package registry provides a generic named registry and the global
// registry of trigger factories used to build file selectors from configuration.
package registry
