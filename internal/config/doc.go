// Package config holds the settings for both pipeline stages.
//
// Settings come from three layers, each overriding the one before:
// built-in defaults, an optional YAML file, and ZIPCODES_* environment
// variables. Command-line flags are applied on top by the cli package.
package config
