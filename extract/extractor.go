package extract

import (
	"io"
	"strings"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/goquery"
	"github.com/fwojciec/readable/html"
)

// Ensure Extractor implements readable.Extractor at compile time.
var _ readable.Extractor = (*Extractor)(nil)

// Extractor runs the whole extraction pipeline: read metadata, clean,
// score, select the content root and build the article.
type Extractor struct {
	// Scorer builds the score table. Required.
	Scorer readable.Scorer

	// Metadata reads document metadata before the tree is cleaned.
	// When nil no metadata is used.
	Metadata readable.MetadataReader

	// Sanitizer, when set, filters the rendered content HTML.
	Sanitizer readable.Sanitizer
}

// NewExtractor returns an Extractor with the default scorer and the
// goquery metadata reader.
func NewExtractor() *Extractor {
	return &Extractor{
		Scorer:   NewScorer(),
		Metadata: goquery.NewMetadataReader(),
	}
}

// Extract parses rawHTML and extracts its main content.
func (e *Extractor) Extract(rawHTML string, opts readable.ExtractOptions) (*readable.Article, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tree, err := html.ParseString(rawHTML, opts.ParseOptions)
	if err != nil {
		return nil, err
	}
	return e.ExtractTree(tree, opts)
}

// ExtractTree extracts the main content of tree, modifying it in place.
// Options are validated before the tree is touched.
func (e *Extractor) ExtractTree(tree *readable.Tree, opts readable.ExtractOptions) (*readable.Article, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, readable.Errorf(readable.EINVALID, "tree required")
	}
	if e.Scorer == nil {
		return nil, readable.Errorf(readable.EINVALID, "scorer required")
	}
	if opts.MaxElements > 0 {
		if n := tree.CountElements(tree.Root()); n > opts.MaxElements {
			return nil, readable.Errorf(readable.EPARSE, "document has %d elements, limit is %d", n, opts.MaxElements)
		}
	}

	meta := &readable.Metadata{}
	if e.Metadata != nil {
		m, err := e.Metadata.ReadMetadata(tree)
		if err != nil {
			return nil, err
		}
		if m != nil {
			meta = m
		}
	}

	NewCleaner(opts.ScorerOptions).Clean(tree)

	table, err := e.Scorer.Score(tree, opts.ScorerOptions)
	if err != nil {
		return nil, err
	}
	if table == nil {
		table = readable.NewScoreTable()
	}

	top, err := NewSelector(opts.ScorerOptions).Select(tree, table)
	if err != nil {
		return nil, err
	}

	article, err := NewBuilder(opts).Build(tree, table, top, meta)
	if err != nil {
		return nil, err
	}
	if e.Sanitizer != nil {
		article.Content = e.Sanitizer.Sanitize(article.Content)
	}
	return article, nil
}

// Extract extracts the main content of tree with the default scorer and
// metadata reader.
func Extract(tree *readable.Tree, opts readable.ExtractOptions) (*readable.Article, error) {
	return NewExtractor().ExtractTree(tree, opts)
}

// ExtractWithScorer extracts the main content of tree using scorer in
// place of the default one. Errors from scorer are returned unchanged.
// A nil scorer fails with EINVALID; a typed nil pointer is passed through
// and must be handled by its Score method.
func ExtractWithScorer(tree *readable.Tree, scorer readable.Scorer, opts readable.ExtractOptions) (*readable.Article, error) {
	e := NewExtractor()
	e.Scorer = scorer
	return e.ExtractTree(tree, opts)
}

// ExtractHTML parses the document read from r and extracts its main content.
func ExtractHTML(r io.Reader, opts readable.ExtractOptions) (*readable.Article, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tree, err := html.Parse(r, opts.ParseOptions)
	if err != nil {
		return nil, err
	}
	return Extract(tree, opts)
}

// ExtractString is ExtractHTML for a document held in memory.
func ExtractString(rawHTML string, opts readable.ExtractOptions) (*readable.Article, error) {
	return ExtractHTML(strings.NewReader(rawHTML), opts)
}
