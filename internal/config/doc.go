// Package config loads, validates, and normalizes tracksmith configuration.
//
// Configuration flows from three sources with increasing precedence: the
// TOML config file, TRACKSMITH_*/TMDB_API_KEY environment variables, and
// CLI flags (applied by the command layer after Load).
package config
