package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/readable"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ readable.ArticleService = (*ArticleService)(nil)

const articleColumns = "id, source_url, title, byline, excerpt, image, site_name, content_html, content, content_hash, extracted_at"

// ArticleService implements readable.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// CreateArticle stores a new article record.
func (s *ArticleService) CreateArticle(ctx context.Context, rec *readable.ArticleRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	if rec.ExtractedAt.IsZero() {
		rec.ExtractedAt = time.Now().UTC()
	}
	rec.ContentHash = hashContent(rec.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourceURL, rec.Title, rec.Byline, rec.Excerpt, rec.Image, rec.SiteName,
		rec.ContentHTML, rec.Content, rec.ContentHash, rec.ExtractedAt.UTC().Format(time.RFC3339))

	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*readable.ArticleRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id)
	rec, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, readable.Errorf(readable.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter readable.ArticleFilter) ([]*readable.ArticleRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY extracted_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*readable.ArticleRecord
	for rows.Next() {
		rec, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return readable.Errorf(readable.ENOTFOUND, "article not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*readable.ArticleRecord, error) {
	var rec readable.ArticleRecord
	var extractedAt string

	if err := row.Scan(&rec.ID, &rec.SourceURL, &rec.Title, &rec.Byline, &rec.Excerpt, &rec.Image,
		&rec.SiteName, &rec.ContentHTML, &rec.Content, &rec.ContentHash, &extractedAt); err != nil {
		return nil, err
	}

	t, err := parseExtractedAt(rec.ID, extractedAt)
	if err != nil {
		return nil, err
	}
	rec.ExtractedAt = t

	return &rec, nil
}
