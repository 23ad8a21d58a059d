package readable

import "context"

// Fetcher retrieves raw HTML from a source such as a URL or a local file.
type Fetcher interface {
	// Fetch returns the HTML found at source.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, source string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
