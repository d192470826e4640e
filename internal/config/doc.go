// Package config loads pkgscout's configuration.
//
// # Overview
//
// Settings come from an optional TOML file and PKGSCOUT_* environment
// variables. Everything has a default, so pkgscout runs without any
// configuration at all.
//
// # Resolution Order
//
//  1. Built-in defaults
//  2. ~/.config/pkgscout/config.toml, or the path passed to Load
//  3. Environment variables (PKGSCOUT_STORAGE, PKGSCOUT_DEBOUNCE, ...)
//
// A missing file is not an error. Blank values fall back to the default.
//
// # TOML Format
//
//	registry_url = "https://registry.npmjs.org"
//	storage      = "file"          # file, sqlite or memory
//	data_dir     = "~/.local/share/pkgscout"
//	popular_path = "~/.config/pkgscout/popular.toml"
//	log_level    = "info"
//	log_path     = "~/.local/share/pkgscout/pkgscout.log"
//	debounce     = "150ms"
//	cache_ttl    = "2m"
//	rate_limit   = 5.0             # lookups per second, 0 disables
//
// Each key maps to an environment variable of the same name in upper case
// with the PKGSCOUT_ prefix.
//
// # Derived Paths
//
//   - LogPath defaults to <data_dir>/pkgscout.log
//   - SQLitePath is always <data_dir>/pkgscout.db
//
// Paths accept a leading ~ and are made absolute.
//
// # Error Handling
//
// Load fails on unreadable files, TOML syntax errors, unknown storage
// backends, unparsable or non-positive durations and negative rate limits.
package config
