// Package bloom tracks which sources a batch run has already seen.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a Bloom filter over normalized source keys. It is safe for
// concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected sources
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records source in the filter.
func (f *Filter) Add(source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(Key(source))
}

// Test returns true if source might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(source string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(Key(source))
}

// Seen records source and reports whether it was (probably) recorded before.
func (f *Filter) Seen(source string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(Key(source))
}

// EstimatedCount returns the approximate number of sources in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}

// Key normalizes a source for de-duplication. URLs lose their fragment and
// get a lower-case scheme and host; anything else is only trimmed.
func Key(source string) string {
	source = strings.TrimSpace(source)
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return source
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}
