package readable

import (
	"context"
	"time"
)

// ArticleRecord is a stored extraction result.
type ArticleRecord struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Byline      string    `json:"byline"`
	Excerpt     string    `json:"excerpt"`
	Image       string    `json:"image"`
	SiteName    string    `json:"siteName"`
	ContentHTML string    `json:"contentHtml"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// NewArticleRecord builds a record for source from an extracted article.
// Content holds the Markdown rendering when available, otherwise the text.
func NewArticleRecord(source string, a *Article, markdown string) *ArticleRecord {
	content := markdown
	if content == "" {
		content = a.Text
	}
	return &ArticleRecord{
		SourceURL:   source,
		Title:       a.Title,
		Byline:      a.Byline,
		Excerpt:     a.Excerpt,
		Image:       a.Image,
		SiteName:    a.SiteName,
		ContentHTML: a.Content,
		Content:     content,
	}
}

// Validate returns an error if the record contains invalid fields.
func (r *ArticleRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "article source URL required")
	}
	if r.Content == "" && r.ContentHTML == "" {
		return Errorf(EINVALID, "article content required")
	}
	return nil
}

// ArticleWriter writes article records to storage.
type ArticleWriter interface {
	CreateArticle(ctx context.Context, rec *ArticleRecord) error
}

// ArticleService represents a service for managing stored articles.
type ArticleService interface {
	// CreateArticle stores a new record, assigning ID, hash and timestamp.
	CreateArticle(ctx context.Context, rec *ArticleRecord) error

	// FindArticleByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindArticleByID(ctx context.Context, id string) (*ArticleRecord, error)

	// FindArticles retrieves records matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*ArticleRecord, error)

	// DeleteArticle permanently removes a record.
	// Returns ENOTFOUND if the record does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID          *string `json:"id"`
	SourceURL   *string `json:"sourceUrl"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
