// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file, COURSEREG_ environment variables and
// command-line flags. It provides type-safe access to the settings the
// registrar needs while keeping configuration details separate from the
// registration logic.
package config
