//go:build !sqlite_cgo

package kv

// Default build: pure Go SQLite, no C toolchain required.
//
//	CGO_ENABLED=0 go build ./...

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the database/sql driver backing the SQLite backend.
	DriverName = "sqlite"

	// BuildMode describes the SQLite driver compiled in.
	BuildMode = "purego"
)
