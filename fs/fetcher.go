package fs

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/fwojciec/readable"
)

// Ensure Fetcher implements readable.Fetcher at compile time.
var _ readable.Fetcher = (*Fetcher)(nil)

// Fetcher reads HTML documents from the local file system. Sources are
// plain paths or file:// URLs.
type Fetcher struct{}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch returns the contents of the file at source.
func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := source
	if strings.HasPrefix(source, "file://") {
		u, err := url.Parse(source)
		if err != nil {
			return "", readable.Errorf(readable.EINVALID, "invalid file URL %q: %v", source, err)
		}
		path = u.Path
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", readable.Errorf(readable.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
