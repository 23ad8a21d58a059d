package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/batch"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	opts, err := c.Options()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	runner := &batch.Runner{
		Fetcher:     deps.Fetcher,
		Extractor:   deps.Extractor,
		Converter:   deps.Converter,
		Articles:    deps.Writer,
		Limiter:     deps.Limiter,
		Options:     &opts,
		Concurrency: c.Concurrency,
		RetryDelays: deps.RetryDelays,
	}
	if deps.Logger != nil {
		runner.OnRetry = func(source string, attempt int, err error) {
			deps.Logger.Warn("retry", "source", source, "attempt", attempt, "err", err)
		}
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "skip: %s (duplicate)\n", event.Source)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", batch.TruncateSource(event.Source, 60), describe(event.Error))
		}
	}

	result, err := runner.Run(deps.Ctx, c.Sources, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	first := true
	for _, item := range result.Items {
		if item.Err != nil || item.Article == nil {
			continue
		}
		if !first && c.Format != "json" {
			fmt.Fprintln(deps.Stdout)
		}
		first = false
		if err := writeArticle(deps.Stdout, c.Format, item); err != nil {
			return err
		}
	}

	if deps.Writer != nil {
		fmt.Fprintf(deps.Stderr, "Saved %d of %d articles (%s)\n", result.Saved, len(result.Items), batch.FormatBytes(result.Bytes))
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d sources failed", result.Failed, len(result.Items))
	}
	return nil
}

// jsonArticle is the JSON output of one article.
type jsonArticle struct {
	Source string `json:"source"`
	*readable.Article
	Markdown string `json:"markdown,omitempty"`
	Hash     string `json:"hash"`
}

func writeArticle(w io.Writer, format string, item batch.Item) error {
	a := item.Article
	switch format {
	case "html":
		_, err := fmt.Fprintln(w, a.Content)
		return err
	case "markdown":
		if a.Title != "" {
			if _, err := fmt.Fprintf(w, "# %s\n\n", a.Title); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, item.Markdown)
		return err
	case "json":
		return json.NewEncoder(w).Encode(jsonArticle{
			Source:   item.Source,
			Article:  a,
			Markdown: item.Markdown,
			Hash:     item.Hash,
		})
	default:
		if a.Title != "" {
			if _, err := fmt.Fprintf(w, "%s\n\n", a.Title); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, a.Text)
		return err
	}
}

// describe formats an error for the terminal.
func describe(err error) string {
	if readable.ErrorCode(err) == readable.EINTERNAL {
		return err.Error()
	}
	return fmt.Sprintf("%s (%s)", readable.ErrorMessage(err), readable.ErrorCode(err))
}
