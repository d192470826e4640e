//go:build sqlite_cgo

package kv

// Built with the sqlite_cgo tag: uses the C SQLite library.
//
//	CGO_ENABLED=1 go build -tags sqlite_cgo ./...

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the database/sql driver backing the SQLite backend.
	DriverName = "sqlite3"

	// BuildMode describes the SQLite driver compiled in.
	BuildMode = "cgo"
)
