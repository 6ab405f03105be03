// Package config loads and merges weightlens configuration from
// multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (WEIGHTLENS_THRESHOLD, WEIGHTLENS_FORMAT, etc.)
//  3. Config file ($XDG_CONFIG_HOME/weightlens/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config] and [SetField] to update a
// single key for the config file.
package config
