package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/mock"
	rslog "github.com/fwojciec/readable/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := rslog.NewLoggingFetcher(inner, newLogger(&buf))
		html, err := fetcher.Fetch(context.Background(), "https://example.com/post")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "source=https://example.com/post")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := rslog.NewLoggingFetcher(inner, newLogger(&buf))
		_, err := fetcher.Fetch(context.Background(), "https://example.com/post")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="network error"`)
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	closeCalled := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closeCalled = true
			return nil
		},
	}

	err := rslog.NewLoggingFetcher(inner, newLogger(&buf)).Close()

	require.NoError(t, err)
	assert.True(t, closeCalled)
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs the article", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(string, readable.ExtractOptions) (*readable.Article, error) {
				return &readable.Article{Title: "Hello", TitleSource: readable.SourceOpenGraph, Length: 42}, nil
			},
		}

		a, err := rslog.NewLoggingExtractor(inner, newLogger(&buf)).Extract("<html></html>", readable.DefaultExtractOptions())

		require.NoError(t, err)
		assert.Equal(t, "Hello", a.Title)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "bytes=13")
		assert.Contains(t, output, "title=Hello")
		assert.Contains(t, output, "title_source=opengraph")
		assert.Contains(t, output, "length=42")
	})

	t.Run("logs the error code message", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(string, readable.ExtractOptions) (*readable.Article, error) {
				return nil, readable.Errorf(readable.ENOCONTENT, "nothing here")
			},
		}

		_, err := rslog.NewLoggingExtractor(inner, newLogger(&buf)).Extract("x", readable.DefaultExtractOptions())

		assert.Equal(t, readable.ENOCONTENT, readable.ErrorCode(err))
		assert.Contains(t, buf.String(), "nothing here")
		assert.NotContains(t, buf.String(), "title=")
	})
}

func TestLoggingScorer_Score(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	table := readable.NewScoreTable()
	table.Add(1, 3)
	table.Add(2, 4)
	inner := &mock.Scorer{
		ScoreFn: func(*readable.Tree, readable.ScorerOptions) (*readable.ScoreTable, error) {
			return table, nil
		},
	}

	got, err := rslog.NewLoggingScorer(inner, newLogger(&buf)).Score(readable.NewTree(), readable.DefaultScorerOptions())

	require.NoError(t, err)
	assert.Same(t, table, got)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "scored=2")
	assert.Contains(t, buf.String(), "weighting=level")
}

func TestLoggingArticleWriter_CreateArticle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.ArticleWriter{
		CreateArticleFn: func(_ context.Context, rec *readable.ArticleRecord) error {
			rec.ID = "id-1"
			return nil
		},
	}

	err := rslog.NewLoggingArticleWriter(inner, newLogger(&buf)).CreateArticle(context.Background(),
		&readable.ArticleRecord{SourceURL: "https://example.com/a", Content: "x"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "msg=save")
	assert.Contains(t, buf.String(), "id=id-1")
}
