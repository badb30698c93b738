// Package config handles configuration management for retemplate.
// It layers the embedded defaults, the user configuration file, the
// project configuration file, RETEMPLATE_* environment variables and
// command-line overrides with koanf, and decodes the result into Config.
package config
