// Package config loads, normalizes, and validates filesort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and resolves the Format Table from either the
// built-in defaults, an inline [[formats]] array, or an external TOML/YAML
// file. Environment fallbacks such as FILESORT_SOURCE_DIR are honoured so the
// CLI can run without a config file.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
