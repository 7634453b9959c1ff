// Package config loads the serving configuration from YAML files, environment
// variables and CLI flags with precedence: CLI flags > YAML config >
// Environment variables > Defaults.
package config
