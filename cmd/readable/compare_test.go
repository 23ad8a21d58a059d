package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/readable"
	main "github.com/fwojciec/readable/cmd/readable"
	"github.com/fwojciec/readable/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textExtractor(title, text string, err error) *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(string, readable.ExtractOptions) (*readable.Article, error) {
			if err != nil {
				return nil, err
			}
			return &readable.Article{Title: title, Text: text, Length: len(text)}, nil
		},
	}
}

func TestCompareCmd_Run(t *testing.T) {
	t.Parallel()

	newDeps := func(stdout, stderr *bytes.Buffer, ours readable.Extractor) *main.Dependencies {
		return &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil },
			},
			Extractor: ours,
			References: map[string]readable.Extractor{
				"readability": textExtractor("Ref", "one two three four", nil),
			},
			RetryDelays: []time.Duration{0},
		}
	}
	cmd := func() *main.CompareCmd {
		return &main.CompareCmd{
			Source:       "https://example.com/a",
			Reference:    "readability",
			ExtractFlags: main.ExtractFlags{MaxParents: -1, MinLength: -1},
		}
	}

	t.Run("prints similarity", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		err := cmd().Run(newDeps(&stdout, &stderr, textExtractor("Ours", "one two three", nil)))

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "source:      https://example.com/a")
		assert.Contains(t, out, `readable:    "Ours", 13 chars`)
		assert.Contains(t, out, `readability: "Ref", 18 chars`)
		assert.Contains(t, out, "similarity:  0.750")
	})

	t.Run("prints extractor errors", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		ours := textExtractor("", "", readable.Errorf(readable.ENOCONTENT, "no candidate"))

		err := cmd().Run(newDeps(&stdout, &stderr, ours))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "error: no candidate (ENOCONTENT)")
		assert.NotContains(t, stdout.String(), "similarity")
	})

	t.Run("rejects an unknown reference", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		c := cmd()
		c.Reference = "other"

		err := c.Run(newDeps(&stdout, &stderr, textExtractor("", "", nil)))

		assert.Equal(t, readable.EINVALID, readable.ErrorCode(err))
	})
}
