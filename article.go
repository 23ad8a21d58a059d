package readable

// MetadataSource records where an Article field came from.
type MetadataSource string

// MetadataSource constants.
const (
	SourceNone      MetadataSource = ""
	SourceDocument  MetadataSource = "document"
	SourceHeading   MetadataSource = "heading"
	SourceOpenGraph MetadataSource = "opengraph"
	SourceTwitter   MetadataSource = "twitter"
	SourceJSONLD    MetadataSource = "jsonld"
	SourceMeta      MetadataSource = "meta"
	SourceContent   MetadataSource = "content"
)

// Article is the readable content extracted from a document.
type Article struct {
	Title         string `json:"title"`
	Byline        string `json:"byline,omitempty"`
	Excerpt       string `json:"excerpt,omitempty"`
	Image         string `json:"image,omitempty"`
	SiteName      string `json:"siteName,omitempty"`
	Language      string `json:"language,omitempty"`
	PublishedTime string `json:"publishedTime,omitempty"`

	// Content is the cleaned content subtree serialized as HTML.
	Content string `json:"content"`

	// Text is the plain-text rendering of Content.
	Text string `json:"text"`

	// Length is the number of characters in Text.
	Length int `json:"length"`

	TitleSource   MetadataSource `json:"titleSource,omitempty"`
	BylineSource  MetadataSource `json:"bylineSource,omitempty"`
	ExcerptSource MetadataSource `json:"excerptSource,omitempty"`
	ImageSource   MetadataSource `json:"imageSource,omitempty"`

	// Tree and Root give access to the content subtree itself.
	Tree *Tree  `json:"-"`
	Root NodeID `json:"-"`
}

// Extractor extracts the readable content of an HTML document.
type Extractor interface {
	// Extract parses rawHTML and returns its main content.
	// Fails with EPARSE, ENOCONTENT or EINVALID.
	Extract(rawHTML string, opts ExtractOptions) (*Article, error)
}

// Metadata holds document-level facts read before the tree is cleaned.
type Metadata struct {
	// DocumentTitle is the text of the <title> element.
	DocumentTitle string

	// Headings holds the text of every <h1> in document order.
	Headings []string

	// Meta maps lower-cased property, name and itemprop keys of <meta>
	// elements to their content. The first occurrence of a key wins.
	Meta map[string]string

	LinkedData LinkedData

	// Byline is the text of the first element marked up as an author.
	Byline string

	// Language is the lang attribute of the <html> element.
	Language string
}

// LinkedData holds the article fields of a JSON-LD block.
type LinkedData struct {
	Headline      string
	Author        string
	Description   string
	Image         string
	DatePublished string
	Publisher     string
}

// MetaValue returns the first non-empty value among keys.
func (m *Metadata) MetaValue(keys ...string) (string, string) {
	if m == nil {
		return "", ""
	}
	for _, k := range keys {
		if v := m.Meta[k]; v != "" {
			return k, v
		}
	}
	return "", ""
}

// MetadataReader reads document metadata without modifying the tree.
type MetadataReader interface {
	ReadMetadata(tree *Tree) (*Metadata, error)
}

// Sanitizer removes unsafe markup from serialized HTML.
type Sanitizer interface {
	Sanitize(html string) string
}
