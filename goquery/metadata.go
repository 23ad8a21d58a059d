package goquery

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/html"
)

// Ensure MetadataReader implements readable.MetadataReader at compile time.
var _ readable.MetadataReader = (*MetadataReader)(nil)

var bylineClass = regexp.MustCompile(`(?i)byline|author|dateline|writtenby|p-author`)

// maxBylineLength bounds the text of an element accepted as a byline.
const maxBylineLength = 100

// MetadataReader reads document metadata with CSS selectors.
type MetadataReader struct{}

// NewMetadataReader creates a new MetadataReader.
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// ReadMetadata reads the title, headings, meta tags, JSON-LD, byline and
// language of tree. The tree is not modified.
func (r *MetadataReader) ReadMetadata(tree *readable.Tree) (*readable.Metadata, error) {
	if tree == nil {
		return nil, readable.Errorf(readable.EINVALID, "tree required")
	}
	doc := goquery.NewDocumentFromNode(html.ToNode(tree, tree.Root()))

	meta := &readable.Metadata{
		DocumentTitle: strings.TrimSpace(doc.Find("title").First().Text()),
		Meta:          make(map[string]string),
	}

	doc.Find("h1").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.Join(strings.Fields(sel.Text()), " "); text != "" {
			meta.Headings = append(meta.Headings, text)
		}
	})

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		content, ok := sel.Attr("content")
		content = strings.TrimSpace(content)
		if !ok || content == "" {
			return
		}
		for _, attr := range []string{"property", "name", "itemprop"} {
			v, _ := sel.Attr(attr)
			// property may hold several space-separated keys
			for _, key := range strings.Fields(strings.ToLower(v)) {
				if _, seen := meta.Meta[key]; !seen {
					meta.Meta[key] = content
				}
			}
		}
	})

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		ld, ok := parseLinkedData(sel.Text())
		if ok {
			meta.LinkedData = ld
		}
		return !ok
	})

	meta.Byline = findByline(doc)
	meta.Language = strings.TrimSpace(doc.Find("html").AttrOr("lang", ""))
	return meta, nil
}

// findByline returns the text of the first element marked up as the
// author of the document.
func findByline(doc *goquery.Document) string {
	var byline string
	doc.Find("body *").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		rel, _ := sel.Attr("rel")
		itemprop, _ := sel.Attr("itemprop")
		match := sel.AttrOr("class", "") + " " + sel.AttrOr("id", "")
		if rel != "author" && !strings.Contains(itemprop, "author") &&
			(strings.TrimSpace(match) == "" || !bylineClass.MatchString(match)) {
			return true
		}
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" || utf8.RuneCountInString(text) >= maxBylineLength {
			return true
		}
		byline = text
		return false
	})
	return byline
}

// parseLinkedData returns the first article object of a JSON-LD block,
// looking inside arrays and @graph containers.
func parseLinkedData(raw string) (readable.LinkedData, bool) {
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &v); err != nil {
		return readable.LinkedData{}, false
	}
	queue := []any{v}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		switch x := item.(type) {
		case []any:
			queue = append(queue, x...)
		case map[string]any:
			if graph, ok := x["@graph"].([]any); ok {
				queue = append(queue, graph...)
			}
			if !isArticleType(x["@type"]) {
				continue
			}
			return readable.LinkedData{
				Headline:      firstString(x["headline"], x["name"]),
				Author:        names(x["author"]),
				Description:   firstString(x["description"]),
				Image:         firstURL(x["image"]),
				DatePublished: firstString(x["datePublished"]),
				Publisher:     names(x["publisher"]),
			}, true
		}
	}
	return readable.LinkedData{}, false
}

func isArticleType(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.HasSuffix(t, "Article") || strings.HasSuffix(t, "Posting") || t == "Report"
	case []any:
		for _, x := range t {
			if isArticleType(x) {
				return true
			}
		}
	}
	return false
}

func firstString(vs ...any) string {
	for _, v := range vs {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// names joins the names of a person or organization value, which may be a
// string, an object with a name or a list of either.
func names(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case map[string]any:
		return firstString(x["name"])
	case []any:
		var out []string
		for _, item := range x {
			if n := names(item); n != "" {
				out = append(out, n)
			}
		}
		return strings.Join(out, ", ")
	}
	return ""
}

func firstURL(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case map[string]any:
		return firstString(x["url"], x["contentUrl"])
	case []any:
		for _, item := range x {
			if u := firstURL(item); u != "" {
				return u
			}
		}
	}
	return ""
}
