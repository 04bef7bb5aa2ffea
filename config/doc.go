// Package config provides creditstream's configuration management.
//
// It loads a Config from defaults, an optional YAML file, and environment
// variables, in that order of precedence.
package config
