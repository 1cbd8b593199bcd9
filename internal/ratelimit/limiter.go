// Package ratelimit implements the per-client abuse-control counters. The
// Limiter is an injected capability so handlers stay agnostic of whether the
// counters live in Redis or in process memory.
package ratelimit

import "context"

// Limiter reports whether the client identified by key may proceed. The key
// is the client IP at the transport layer. Implementations must be safe under
// arbitrary interleaving.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
