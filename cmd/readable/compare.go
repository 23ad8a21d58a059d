package main

import (
	"fmt"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/batch"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	reference, ok := deps.References[c.Reference]
	if !ok {
		err := readable.Errorf(readable.EINVALID, "unknown reference extractor %q", c.Reference)
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	opts, err := c.Options()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	delays := deps.RetryDelays
	if delays == nil {
		delays = batch.DefaultRetryDelays()
	}
	html, err := batch.FetchWithRetry(deps.Ctx, c.Source, deps.Fetcher.Fetch, delays, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	cmp := batch.Compare(html, deps.Extractor, reference, opts)

	w := deps.Stdout
	fmt.Fprintf(w, "source:      %s\n", c.Source)
	printSide(deps, "readable", cmp.Ours, cmp.OursErr)
	printSide(deps, c.Reference, cmp.Reference, cmp.ReferenceErr)
	if cmp.OursErr == nil && cmp.ReferenceErr == nil {
		fmt.Fprintf(w, "similarity:  %.3f\n", cmp.Similarity)
		fmt.Fprintf(w, "length:      %.2fx\n", cmp.LengthRatio)
	}
	return nil
}

func printSide(deps *Dependencies, name string, a *readable.Article, err error) {
	if err != nil {
		fmt.Fprintf(deps.Stdout, "%-12s error: %s\n", name+":", describe(err))
		return
	}
	fmt.Fprintf(deps.Stdout, "%-12s %q, %d chars\n", name+":", a.Title, a.Length)
}
