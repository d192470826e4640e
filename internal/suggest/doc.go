// Package suggest turns a partially typed query into a bounded, deduplicated
// suggestion list drawn from three sources: a remote registry lookup, the
// recent-search history and a static popularity list.
//
// # Pipeline
//
//	Input("rea") ──┬──> local: recent/popular filtered by "rea"  (synchronous)
//	               │
//	               └──> debounce 150ms ──> token++ ──> cache? ──> lookup (goroutine)
//	                                                              │
//	                          token still current? <──────────────┘
//	                          yes: apply, publish on Updates()
//	                          no:  discard
//
// Every Input restarts the debounce timer. When the input has been quiet for
// the delay, the query becomes the debounced query and receives a new
// generation token. A lookup response is applied only if its token is still
// the latest, so a slow answer for an old query can never overwrite a newer
// one. Superseded requests are not cancelled, only ignored.
//
// Queries shorter than two runes never reach the network. Lookup results are
// cached per exact query for two minutes in a bounded LRU; concurrent
// lookups of the same query share one request.
//
// # Merge policy
//
// The output is api ++ recent ++ popular, deduplicated by Value with the
// first occurrence kept, and truncated to MaxItems. When a query is empty the
// first 6 recent and first 8 popular entries are offered; otherwise up to 4
// recent and 6 popular entries containing the query (case-insensitive).
//
// # Failure handling
//
// A failed lookup contributes nothing, is logged, and is surfaced only as
// Result.Err. It is not retried until new input arrives and is not cached.
package suggest
