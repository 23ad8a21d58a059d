// Package slog provides logging decorators for the readable services.
// Each decorator logs one record per call with its inputs, outcome and
// duration, and otherwise delegates to the wrapped service.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readable"
)

// Ensure LoggingFetcher implements readable.Fetcher.
var _ readable.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   readable.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next readable.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the source being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, source string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"source", source,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, source)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingExtractor implements readable.Extractor.
var _ readable.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   readable.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next readable.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the size of the input and the article produced.
func (e *LoggingExtractor) Extract(rawHTML string, opts readable.ExtractOptions) (article *readable.Article, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(rawHTML)}
		if article != nil {
			attrs = append(attrs,
				"title", article.Title,
				"title_source", string(article.TitleSource),
				"length", article.Length,
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(rawHTML, opts)
}

// Ensure LoggingScorer implements readable.Scorer.
var _ readable.Scorer = (*LoggingScorer)(nil)

// LoggingScorer wraps a Scorer with debug logging.
type LoggingScorer struct {
	next   readable.Scorer
	logger *slog.Logger
}

// NewLoggingScorer creates a new LoggingScorer.
func NewLoggingScorer(next readable.Scorer, logger *slog.Logger) *LoggingScorer {
	return &LoggingScorer{next: next, logger: logger}
}

// Score logs how many nodes were scored.
func (s *LoggingScorer) Score(tree *readable.Tree, opts readable.ScorerOptions) (table *readable.ScoreTable, err error) {
	defer func(begin time.Time) {
		scored := 0
		if table != nil {
			scored = table.Len()
		}
		s.logger.Debug("score",
			"weighting", opts.CandidateScore.String(),
			"scored", scored,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Score(tree, opts)
}

// Ensure LoggingArticleWriter implements readable.ArticleWriter.
var _ readable.ArticleWriter = (*LoggingArticleWriter)(nil)

// LoggingArticleWriter wraps an ArticleWriter with logging.
type LoggingArticleWriter struct {
	next   readable.ArticleWriter
	logger *slog.Logger
}

// NewLoggingArticleWriter creates a new LoggingArticleWriter.
func NewLoggingArticleWriter(next readable.ArticleWriter, logger *slog.Logger) *LoggingArticleWriter {
	return &LoggingArticleWriter{next: next, logger: logger}
}

// CreateArticle logs the stored record.
func (w *LoggingArticleWriter) CreateArticle(ctx context.Context, rec *readable.ArticleRecord) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("save",
			"source", rec.SourceURL,
			"id", rec.ID,
			"hash", rec.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.CreateArticle(ctx, rec)
}
