// Package registry provides an HTTP client for npm-compatible package
// search.
//
// # Overview
//
// The suggestion engine treats the registry as an unreliable collaborator:
// it may be slow, rate limit us, or return garbage. This package only
// translates one lookup into one HTTP request and reports what went wrong;
// callers decide how to degrade.
//
// # Endpoint
//
//	GET /-/v1/search?text=<query>&size=<limit>&from=<offset>
//
// The response's objects[].package records are decoded into Package values.
// Hits without a name are dropped.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: pkgscout/0.1
//   - Have a 5-second timeout
//   - Pass through a client-side token bucket (default 5/s, burst 2)
//
// # Error Handling
//
// Example error messages:
//   - "execute request: dial tcp: connection refused"
//   - "registry /-/v1/search returned status 503"
//   - "decode response: unexpected EOF"
//   - "rate limit: context canceled"
//
// # Design Rationale
//
//   - No caching (the suggest package owns the staleness window)
//   - No retries (a new keystroke is the retry)
//
// # Usage
//
//	client, err := registry.NewClient("https://registry.npmjs.org")
//	if err != nil {
//		return err
//	}
//	page, err := client.Search(ctx, "reac", 10, 0)
package registry
