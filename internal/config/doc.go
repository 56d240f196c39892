// Package config handles fixture generator configuration: defaults, YAML
// loading with environment variable substitution, and validation.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
package config
