package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/readable"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := readable.ArticleFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.SourceURL = &c.Source
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readable.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'readable extract --db' to store some.")
		return nil
	}

	for _, a := range articles {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", a.ID, a.ExtractedAt.Format(time.DateOnly), a.Title, a.SourceURL)
	}

	return nil
}
