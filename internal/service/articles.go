package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-article-feed/internal/metrics"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/internal/pkg/log"
	"github.com/pribylovaa/go-article-feed/internal/storage"
)

// ArticleInput — данные новой статьи.
type ArticleInput struct {
	Title       string
	Description string
	Content     string
	Category    models.Category
	Images      []string
	Tags        []string
}

// UpdateArticleInput — частичный апдейт содержимого: только непустые указатели.
type UpdateArticleInput struct {
	Title       *string
	Description *string
	Content     *string
	Category    *models.Category
	Images      *[]string
	Tags        *[]string
}

// CreateArticle создаёт статью автора в состоянии DRAFT.
func (s *Service) CreateArticle(ctx context.Context, authorID uuid.UUID, in ArticleInput) (*models.ArticleView, error) {
	const op = "service/articles/CreateArticle"

	lg := log.From(ctx).With("op", op, "user_id", authorID.String())

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%s: %w", op, invalid("title is required"))
	}

	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%s: %w", op, invalid("content is required"))
	}

	if !in.Category.Valid() {
		return nil, fmt.Errorf("%s: %w", op, invalid("unknown category %q", in.Category))
	}

	rec, err := s.storage.CreateArticle(ctx, &models.Article{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Content:     in.Content,
		Category:    in.Category,
		Images:      cleanList(in.Images),
		Tags:        cleanList(in.Tags),
		AuthorID:    authorID,
		Status:      models.StatusDraft,
	})
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	lg.Info("article_created", "article_id", rec.Article.ID.String())

	view := NewView(*rec, authorID)

	return &view, nil
}

// UpdateArticle обновляет содержимое статьи. Чужая и отсутствующая статья
// неразличимы: ErrNotFound.
func (s *Service) UpdateArticle(ctx context.Context, authorID, articleID uuid.UUID, in UpdateArticleInput) (*models.ArticleView, error) {
	const op = "service/articles/UpdateArticle"

	lg := log.From(ctx).With("op", op, "user_id", authorID.String(), "article_id", articleID.String())

	var upd storage.ArticleUpdate

	if in.Title != nil {
		v := strings.TrimSpace(*in.Title)
		if v == "" {
			return nil, fmt.Errorf("%s: %w", op, invalid("title must not be empty"))
		}
		upd.Title = &v
	}

	if in.Description != nil {
		v := strings.TrimSpace(*in.Description)
		upd.Description = &v
	}

	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, fmt.Errorf("%s: %w", op, invalid("content must not be empty"))
		}
		upd.Content = in.Content
	}

	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, fmt.Errorf("%s: %w", op, invalid("unknown category %q", *in.Category))
		}
		upd.Category = in.Category
	}

	if in.Images != nil {
		v := cleanList(*in.Images)
		upd.Images = &v
	}

	if in.Tags != nil {
		v := cleanList(*in.Tags)
		upd.Tags = &v
	}

	rec, err := s.storage.UpdateArticle(ctx, articleID, authorID, upd)
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	view := NewView(*rec, authorID)

	return &view, nil
}

// DeleteArticle удаляет статью автора.
func (s *Service) DeleteArticle(ctx context.Context, authorID, articleID uuid.UUID) error {
	const op = "service/articles/DeleteArticle"

	lg := log.From(ctx).With("op", op, "user_id", authorID.String(), "article_id", articleID.String())

	if err := s.storage.DeleteArticle(ctx, articleID, authorID); err != nil {
		return storageErr(lg, op, err)
	}

	lg.Info("article_deleted")

	return nil
}

// Publish переводит статью в PUBLISHED (published_at = now).
func (s *Service) Publish(ctx context.Context, authorID, articleID uuid.UUID) (*models.ArticleView, error) {
	return s.transition(ctx, "service/articles/Publish", authorID, articleID, models.StatusPublished)
}

// Unpublish возвращает статью в DRAFT (published_at = NULL).
func (s *Service) Unpublish(ctx context.Context, authorID, articleID uuid.UUID) (*models.ArticleView, error) {
	return s.transition(ctx, "service/articles/Unpublish", authorID, articleID, models.StatusDraft)
}

// transition — общий шаг машины состояний. Разрешён только автору: хранилище
// сопоставляет пару (id, author_id), поэтому чужая статья выглядит как отсутствующая
// и её состояние не меняется.
func (s *Service) transition(ctx context.Context, op string, authorID, articleID uuid.UUID, to models.ArticleStatus) (*models.ArticleView, error) {
	lg := log.From(ctx).With("op", op, "user_id", authorID.String(), "article_id", articleID.String())

	rec, err := s.storage.SetStatus(ctx, articleID, authorID, to)
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	metrics.RecordTransition(string(to))
	lg.Info("article_transition", "to", string(to))

	view := NewView(*rec, authorID)

	return &view, nil
}

// MyArticles возвращает все статьи автора, включая черновики.
func (s *Service) MyArticles(ctx context.Context, authorID uuid.UUID) ([]models.ArticleView, error) {
	const op = "service/articles/MyArticles"

	lg := log.From(ctx).With("op", op, "user_id", authorID.String())

	recs, err := s.storage.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	return newViews(recs, authorID), nil
}

// PublicArticles возвращает опубликованные статьи, published_at DESC.
// viewerID может быть uuid.Nil (анонимный просмотр).
func (s *Service) PublicArticles(ctx context.Context, viewerID uuid.UUID, opts models.ListOptions) ([]models.ArticleView, error) {
	const op = "service/articles/PublicArticles"

	lg := log.From(ctx).With("op", op)

	opts, err := s.listOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recs, err := s.storage.ListPublished(ctx, opts)
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	return newViews(recs, viewerID), nil
}

// PublicArticle возвращает только опубликованную статью.
func (s *Service) PublicArticle(ctx context.Context, articleID uuid.UUID) (*models.ArticleView, error) {
	return s.article(ctx, "service/articles/PublicArticle", articleID, uuid.Nil)
}

// Article возвращает статью с учётом видимости: опубликованную — всем,
// черновик — только автору. Для остальных черновик не существует.
func (s *Service) Article(ctx context.Context, articleID, viewerID uuid.UUID) (*models.ArticleView, error) {
	return s.article(ctx, "service/articles/Article", articleID, viewerID)
}

func (s *Service) article(ctx context.Context, op string, articleID, viewerID uuid.UUID) (*models.ArticleView, error) {
	lg := log.From(ctx).With("op", op, "article_id", articleID.String())

	rec, err := s.storage.ArticleByID(ctx, articleID)
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	if !visible(rec.Article, viewerID) {
		lg.Warn("article_not_visible")

		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	view := NewView(*rec, viewerID)

	return &view, nil
}

func visible(a models.Article, viewerID uuid.UUID) bool {
	if a.Status == models.StatusPublished {
		return true
	}

	return viewerID != uuid.Nil && a.AuthorID == viewerID
}

// cleanList обрезает пробелы и выбрасывает пустые элементы.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
