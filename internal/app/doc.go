// Package app is the composition root for pkgscout.
//
// # Overview
//
// Run loads configuration, opens storage, builds the stores, the registry
// client and the suggestion aggregator, then hands them to the TUI or runs a
// single query and prints the result.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        TOML file + PKGSCOUT_* env
//	       ├─────> logging.New()        file logger (no-op on failure)
//	       ├─────> openBackend()        memory | file | sqlite
//	       ├─────> recent/saved stores  share one kv.Store
//	       ├─────> registry.NewClient() rate limited
//	       ├─────> suggest.New()        debounce, cache, merge
//	       └─────> ui.Run() or runOnce()
//
// # Error Handling
//
// Only configuration and registry URL problems are returned from Run. A
// storage backend that cannot be opened is logged and replaced by
// unavailable storage, which behaves as empty. An unreadable popularity list
// falls back to the built-in one.
//
// # One-shot Mode
//
// With Options.Query set, Run feeds the query to the aggregator, waits for the
// lookup to settle (or ten seconds), and prints one tab-aligned line per
// suggestion: source, name and description. Registry failures still print
// the local suggestions.
//
// # Log Tail
//
// The TUI owns the terminal, so logs go to a file. Options.LogLines prints the
// end of that file and exits without opening storage or the network.
package app
