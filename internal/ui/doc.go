// Package ui provides the pkgscout terminal interface.
//
// # Overview
//
// A single Bubble Tea model renders a query field, the merged suggestion list
// and two badges with the favorite and watchlist counts. It is a thin host
// around the suggest, recent and saved packages: all ranking, debouncing and
// persistence happen there.
//
// # Event Flow
//
//  1. Keystrokes edited into the query call Aggregator.Input, whose result
//     is shown immediately (local suggestions only).
//  2. A command blocks on Aggregator.Updates and feeds settled or loading
//     results back in as messages. Results for an older query are dropped.
//  3. The model subscribes to saved-state changes and receives the latest
//     state through a one-slot channel, so mutations made anywhere in the
//     process update the badges.
//
// # Keys
//
//   - up/down (ctrl+p/ctrl+n): move the selection
//   - enter: remember the selection, or the raw query, as a recent search
//   - ctrl+f / ctrl+w: toggle the selection on the favorites / watchlist
//   - ctrl+x: clear recent searches
//   - ctrl+t: cycle theme
//   - esc / ctrl+c: quit
//
// Letters always go to the query field.
package ui
