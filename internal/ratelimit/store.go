// Package ratelimit implements per-client fixed-window request counting.
//
// A window is anchored at the client's first request and is not re-aligned to
// a global clock. A burst straddling a window boundary can therefore pass up
// to twice the configured limit within a rolling window span; callers that
// need a true sliding window should not use this package.
package ratelimit

import "context"

// Store counts a request against clientID's current window and reports
// whether the request is allowed. Implementations must start a fresh window
// (count 1, allowed) when no window exists or the previous one has expired,
// and otherwise reject once the post-increment count exceeds the limit.
type Store interface {
	Allow(ctx context.Context, clientID string) (bool, error)
}
