// Package kv is the persistent key-value layer under the recent-search and
// saved-items stores.
//
// # Overview
//
// Values are JSON documents keyed by fixed, versioned names such as
// "pkgscout.saved.v1". Storage is treated as unreliable: it may be missing,
// read-only, full, or hold a payload written by an older format. Every such
// case resolves to the caller's fallback value, so downstream stores are
// total and the application degrades to "no history, nothing saved" rather
// than failing.
//
// # Backends
//
//   - Memory: in-process map (tests, -ephemeral)
//   - File: one <escaped key>.json per entry in the data directory
//   - SQLite: a single kv table; modernc.org/sqlite by default,
//     github.com/mattn/go-sqlite3 when built with -tags sqlite_cgo
//
// A Store constructed with a nil backend models storage that is unavailable
// in the current execution context.
//
// # Usage
//
//	store := kv.New(kv.NewMemory(), logger)
//	store.Write("pkgscout.recent-searches.v1", []string{"react"})
//	recent := kv.Read(store, "pkgscout.recent-searches.v1", []string{})
//
//	// Serialized read-modify-write
//	kv.Update(store, "counter.v1", 0, func(n int) int { return n + 1 })
package kv
