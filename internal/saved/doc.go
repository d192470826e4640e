// Package saved manages the two user-curated package lists, favorites and
// watchlist.
//
// # Overview
//
// Both lists live in one persisted record under Key. Every mutation
// (Toggle, Remove, Clear) rewrites the whole record with only the targeted
// list changed, then fires an EventChanged broadcast to the listeners
// registered through Subscribe. Several independent surfaces (a list view,
// a detail pane, a status badge) can therefore mutate and observe the same
// state without knowing about each other.
//
// # Broadcast semantics
//
//   - Delivery is synchronous, in subscription order, on the mutating
//     goroutine, after the state has been persisted.
//   - Only listeners registered when the event fires receive it.
//   - A panicking listener is recovered and logged; the rest still run.
//   - Listeners receive their own copy of the state.
//
// # Persistence
//
// Read-modify-write cycles go through kv.Update, which serializes them per
// key so concurrent toggles from different goroutines cannot lose updates.
// When storage is unavailable the store keeps working and simply reports
// empty lists.
package saved
