package mock

import "github.com/fwojciec/readable"

var _ readable.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of readable.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string, opts readable.ExtractOptions) (*readable.Article, error)
}

func (e *Extractor) Extract(rawHTML string, opts readable.ExtractOptions) (*readable.Article, error) {
	return e.ExtractFn(rawHTML, opts)
}

var _ readable.Scorer = (*Scorer)(nil)

// Scorer is a mock implementation of readable.Scorer.
type Scorer struct {
	ScoreFn func(tree *readable.Tree, opts readable.ScorerOptions) (*readable.ScoreTable, error)
}

// Score calls ScoreFn. A nil Scorer fails with EINVALID.
func (s *Scorer) Score(tree *readable.Tree, opts readable.ScorerOptions) (*readable.ScoreTable, error) {
	if s == nil || s.ScoreFn == nil {
		return nil, readable.Errorf(readable.EINVALID, "scorer required")
	}
	return s.ScoreFn(tree, opts)
}

var _ readable.MetadataReader = (*MetadataReader)(nil)

// MetadataReader is a mock implementation of readable.MetadataReader.
type MetadataReader struct {
	ReadMetadataFn func(tree *readable.Tree) (*readable.Metadata, error)
}

func (r *MetadataReader) ReadMetadata(tree *readable.Tree) (*readable.Metadata, error) {
	return r.ReadMetadataFn(tree)
}

var _ readable.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of readable.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string) string
}

func (s *Sanitizer) Sanitize(html string) string {
	return s.SanitizeFn(html)
}
