package readability

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/readable"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements readable.Extractor at compile time.
var _ readable.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability. It serves as a reference to compare the
// native extractor against.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Only BaseURL
// is taken from opts; go-readability uses its own scoring settings.
func (e *Extractor) Extract(rawHTML string, opts readable.ExtractOptions) (*readable.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readable.Errorf(readable.EINVALID, "empty HTML input")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), opts.BaseURL)
	if err != nil {
		return nil, readable.Errorf(readable.EPARSE, "readability: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, readable.Errorf(readable.ENOCONTENT, "readability found no content")
	}

	result := &readable.Article{
		Title:    article.Title,
		Byline:   article.Byline,
		Excerpt:  article.Excerpt,
		Image:    article.Image,
		SiteName: article.SiteName,
		Content:  article.Content,
		Text:     strings.TrimSpace(article.TextContent),
		Root:     readable.NoNode,
	}
	result.Length = utf8.RuneCountInString(result.Text)
	if article.PublishedTime != nil {
		result.PublishedTime = article.PublishedTime.Format(time.RFC3339)
	}
	return result, nil
}
