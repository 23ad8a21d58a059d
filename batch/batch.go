// Package batch runs article extraction over many sources.
// It coordinates fetching, extraction, Markdown conversion and storage,
// processing sources concurrently while keeping results in input order.
package batch

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sources processed at once when
// Runner.Concurrency is not set.
const DefaultConcurrency = 4

// dedupeFalsePositiveRate is the chance the filter reports a new source as
// seen before, which sends the lookup on to the exact set.
const dedupeFalsePositiveRate = 0.0001

// Runner extracts articles from a list of sources. Repeated sources, after
// URL normalization, are skipped; distinct sources are never skipped.
type Runner struct {
	Fetcher   readable.Fetcher
	Extractor readable.Extractor

	// Converter renders Markdown for each article when set.
	Converter readable.Converter

	// Articles stores each article when set.
	Articles readable.ArticleWriter

	// Limiter rate limits fetches per host when set.
	Limiter readable.DomainLimiter

	// Options are passed to the extractor. Nil means the defaults. When
	// BaseURL is unset, each URL source becomes its own base URL.
	Options *readable.ExtractOptions

	Concurrency int
	RetryDelays []time.Duration
	OnRetry     RetryFunc
}

// Item is the outcome for one source.
type Item struct {
	Source   string
	Article  *readable.Article
	Markdown string
	Hash     string
	Err      error
}

// Result holds the outcome of a batch run.
type Result struct {
	// Items holds one entry per distinct source in input order.
	Items []Item

	Extracted int
	Saved     int
	Failed    int
	Skipped   int
	Bytes     int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is never
// called concurrently.
type ProgressFunc func(event ProgressEvent)

// Run processes sources and returns their outcomes. Per-source failures
// are recorded on the items; Run itself fails only for an unusable Runner
// or a canceled context.
func (r *Runner) Run(ctx context.Context, sources []string, progress ProgressFunc) (*Result, error) {
	if r.Fetcher == nil || r.Extractor == nil {
		return nil, readable.Errorf(readable.EINVALID, "batch runner requires a fetcher and an extractor")
	}
	opts := readable.DefaultExtractOptions()
	if r.Options != nil {
		opts = *r.Options
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	result := &Result{}
	seen := bloom.NewFilter(uint(max(len(sources), 1)), dedupeFalsePositiveRate)
	exact := make(map[string]struct{}, len(sources))
	var unique []string
	for _, s := range sources {
		key := bloom.Key(s)
		// The filter answers most lookups; the map rules out false positives.
		if seen.Seen(s) {
			if _, ok := exact[key]; ok {
				result.Skipped++
				progress(ProgressEvent{Type: ProgressSkipped, Source: s})
				continue
			}
		}
		exact[key] = struct{}{}
		unique = append(unique, s)
	}

	total := len(unique)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	type indexed struct {
		pos  int
		item Item
	}
	itemCh := make(chan indexed, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, source := range unique {
			g.Go(func() error {
				itemCh <- indexed{pos: i, item: r.process(gctx, source, opts)}
				return nil
			})
		}
		_ = g.Wait()
		close(itemCh)
	}()

	result.Items = make([]Item, total)
	n := 0
	for res := range itemCh {
		n++
		result.Items[res.pos] = res.item
		if res.item.Err != nil {
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, Source: res.item.Source, Error: res.item.Err})
			continue
		}
		progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, Source: res.item.Source})
	}

	for i := range result.Items {
		item := &result.Items[i]
		if item.Err != nil {
			result.Failed++
			continue
		}
		result.Extracted++
		result.Bytes += len(item.Article.Content)

		if r.Articles == nil {
			continue
		}
		rec := readable.NewArticleRecord(item.Source, item.Article, item.Markdown)
		rec.ContentHash = item.Hash
		if err := r.Articles.CreateArticle(ctx, rec); err != nil {
			item.Err = fmt.Errorf("save %s: %w", item.Source, err)
			result.Failed++
			continue
		}
		result.Saved++
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// process fetches, extracts and converts a single source.
func (r *Runner) process(ctx context.Context, source string, opts readable.ExtractOptions) Item {
	item := Item{Source: source}

	u := sourceURL(source)
	if r.Limiter != nil {
		host := ""
		if u != nil {
			host = u.Host
		}
		if err := r.Limiter.Wait(ctx, host); err != nil {
			item.Err = err
			return item
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, source, r.Fetcher.Fetch, delays, r.OnRetry)
	if err != nil {
		item.Err = err
		return item
	}

	if opts.BaseURL == nil && u != nil {
		opts.BaseURL = u
	}
	article, err := r.Extractor.Extract(html, opts)
	if err != nil {
		item.Err = err
		return item
	}
	item.Article = article

	content := article.Text
	if r.Converter != nil {
		markdown, err := r.Converter.Convert(article.Content)
		if err != nil {
			item.Err = err
			return item
		}
		item.Markdown = markdown
		content = markdown
	}
	item.Hash = ComputeHash(content)

	return item
}

// sourceURL returns source as an absolute http(s) URL, or nil for local
// paths.
func sourceURL(source string) *url.URL {
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return nil
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}
	return u
}
