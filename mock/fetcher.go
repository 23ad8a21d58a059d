package mock

import (
	"context"

	"github.com/fwojciec/readable"
)

var _ readable.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of readable.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, source string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	return f.FetchFn(ctx, source)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ readable.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of readable.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
