package provider

import (
	"context"
	"time"
)

// Result is the normalized outcome of one provider call. Every adapter
// guarantees Tokens >= 0; a vendor that does not report usage yields 0.
type Result struct {
	Reply  string
	Tokens int
}

// Adapter normalizes a single query into a vendor call and the vendor's
// reply into a Result. Adapters hold no mutable state between calls and
// may be invoked concurrently.
type Adapter interface {
	// Name returns the registry name of this provider.
	Name() string

	// Respond sends the query to the vendor and returns the normalized
	// result. The call must honor ctx cancellation.
	Respond(ctx context.Context, query string) (Result, error)
}

// Options carries the vendor-specific parameters an adapter needs.
// Values are passed through opaquely from configuration.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32

	// Timeout bounds one vendor round-trip at the HTTP client level.
	// Zero leaves the client unbounded; the caller's ctx still applies.
	Timeout time.Duration
}
