package main

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/readable"
)

// Ensure SourceFetcher implements readable.Fetcher at compile time.
var _ readable.Fetcher = (*SourceFetcher)(nil)

// SourceFetcher sends http(s) sources to the web fetcher and everything
// else to the file fetcher.
type SourceFetcher struct {
	Web  readable.Fetcher
	File readable.Fetcher
}

// Fetch delegates to the fetcher for source.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) (string, error) {
	if isWebSource(source) {
		return f.Web.Fetch(ctx, source)
	}
	return f.File.Fetch(ctx, source)
}

// Close closes both fetchers.
func (f *SourceFetcher) Close() error {
	return errors.Join(f.Web.Close(), f.File.Close())
}

func isWebSource(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
