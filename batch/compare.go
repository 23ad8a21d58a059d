package batch

import (
	"strings"
	"unicode"

	"github.com/fwojciec/readable"
	"golang.org/x/sync/errgroup"
)

// Comparison holds one document as seen by two extractors.
type Comparison struct {
	Ours         *readable.Article
	Reference    *readable.Article
	OursErr      error
	ReferenceErr error

	// Similarity is the Jaccard index of the lower-cased word sets of both
	// texts. It is 1 when both are empty and 0 when either extractor failed.
	Similarity float64

	// LengthRatio is the length of our text over the reference's. It is 0
	// when the reference text is empty.
	LengthRatio float64
}

// Agrees reports whether both extractors succeeded and their texts are at
// least minSimilarity alike.
func (c *Comparison) Agrees(minSimilarity float64) bool {
	return c.OursErr == nil && c.ReferenceErr == nil && c.Similarity >= minSimilarity
}

// Compare runs ours and reference over the same HTML in parallel.
func Compare(rawHTML string, ours, reference readable.Extractor, opts readable.ExtractOptions) *Comparison {
	var c Comparison
	var g errgroup.Group
	g.Go(func() error {
		c.Ours, c.OursErr = ours.Extract(rawHTML, opts)
		return nil
	})
	g.Go(func() error {
		c.Reference, c.ReferenceErr = reference.Extract(rawHTML, opts)
		return nil
	})
	_ = g.Wait()

	if c.OursErr != nil || c.ReferenceErr != nil {
		return &c
	}
	c.Similarity = WordSimilarity(c.Ours.Text, c.Reference.Text)
	if n := len([]rune(c.Reference.Text)); n > 0 {
		c.LengthRatio = float64(len([]rune(c.Ours.Text))) / float64(n)
	}
	return &c
}

// WordSimilarity returns the Jaccard index of the word sets of a and b.
func WordSimilarity(a, b string) float64 {
	wa, wb := wordSet(a), wordSet(b)
	if len(wa) == 0 && len(wb) == 0 {
		return 1
	}
	shared := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(wa)+len(wb)-shared)
}

func wordSet(s string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
