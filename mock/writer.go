package mock

import (
	"context"

	"github.com/fwojciec/readable"
)

var _ readable.ArticleWriter = (*ArticleWriter)(nil)

// ArticleWriter is a mock implementation of readable.ArticleWriter.
type ArticleWriter struct {
	CreateArticleFn func(ctx context.Context, rec *readable.ArticleRecord) error
}

func (w *ArticleWriter) CreateArticle(ctx context.Context, rec *readable.ArticleRecord) error {
	return w.CreateArticleFn(ctx, rec)
}

var _ readable.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of readable.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, rec *readable.ArticleRecord) error
	FindArticleByIDFn func(ctx context.Context, id string) (*readable.ArticleRecord, error)
	FindArticlesFn    func(ctx context.Context, filter readable.ArticleFilter) ([]*readable.ArticleRecord, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, rec *readable.ArticleRecord) error {
	return s.CreateArticleFn(ctx, rec)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*readable.ArticleRecord, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter readable.ArticleFilter) ([]*readable.ArticleRecord, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}
