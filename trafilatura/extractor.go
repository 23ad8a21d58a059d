package trafilatura

import (
	"bytes"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/readable"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements readable.Extractor at compile time.
var _ readable.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. Like the go-readability adapter it is a
// reference implementation for comparisons.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. BaseURL from
// opts is passed on as the original URL of the page.
func (e *Extractor) Extract(rawHTML string, opts readable.ExtractOptions) (*readable.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readable.Errorf(readable.EINVALID, "empty HTML input")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	topts := trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
		IncludeLinks:   true,
		OriginalURL:    opts.BaseURL,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), topts)
	if err != nil {
		return nil, readable.Errorf(readable.ENOCONTENT, "trafilatura: %v", err)
	}

	var content string
	if result.ContentNode != nil {
		content, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	article := &readable.Article{
		Title:    result.Metadata.Title,
		Byline:   result.Metadata.Author,
		Excerpt:  result.Metadata.Description,
		Image:    result.Metadata.Image,
		SiteName: result.Metadata.Sitename,
		Language: result.Metadata.Language,
		Content:  content,
		Text:     strings.TrimSpace(result.ContentText),
		Root:     readable.NoNode,
	}
	article.Length = utf8.RuneCountInString(article.Text)
	if !result.Metadata.Date.IsZero() {
		article.PublishedTime = result.Metadata.Date.Format(time.RFC3339)
	}
	return article, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
