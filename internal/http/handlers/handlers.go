package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/internal/service"
)

// Service — бизнес-логика, которую вызывают хендлеры; реализуется *service.Service.
type Service interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.Account, error)
	Login(ctx context.Context, identifier, password string) (string, *models.Account, error)
	Account(ctx context.Context, userID uuid.UUID) (*models.Account, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in service.UpdateProfileInput) (*models.Account, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, preferences []models.Category) (*models.Account, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error

	CreateArticle(ctx context.Context, authorID uuid.UUID, in service.ArticleInput) (*models.ArticleView, error)
	UpdateArticle(ctx context.Context, authorID, articleID uuid.UUID, in service.UpdateArticleInput) (*models.ArticleView, error)
	DeleteArticle(ctx context.Context, authorID, articleID uuid.UUID) error
	Publish(ctx context.Context, authorID, articleID uuid.UUID) (*models.ArticleView, error)
	Unpublish(ctx context.Context, authorID, articleID uuid.UUID) (*models.ArticleView, error)
	MyArticles(ctx context.Context, authorID uuid.UUID) ([]models.ArticleView, error)
	PublicArticles(ctx context.Context, viewerID uuid.UUID, opts models.ListOptions) ([]models.ArticleView, error)
	PublicArticle(ctx context.Context, articleID uuid.UUID) (*models.ArticleView, error)
	Article(ctx context.Context, articleID, viewerID uuid.UUID) (*models.ArticleView, error)
	Feed(ctx context.Context, viewerID uuid.UUID, opts models.ListOptions) ([]models.ArticleView, error)

	React(ctx context.Context, actorID, articleID uuid.UUID, action string) (*models.Interaction, error)
	RemoveReaction(ctx context.Context, actorID, articleID uuid.UUID) error

	UploadImage(ctx context.Context, ownerID uuid.UUID, contentType string, size int64, body io.Reader) (string, error)
}

var _ Service = (*service.Service)(nil)

// Handlers агрегирует зависимости REST-хендлеров.
type Handlers struct {
	svc          Service
	maxImageSize int64
}

// New создаёт хендлеры. maxImageSize ограничивает тело запроса загрузки изображения.
func New(svc Service, maxImageSize int64) *Handlers {
	return &Handlers{svc: svc, maxImageSize: maxImageSize}
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return err
	}

	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}

	return nil
}

// pathID разбирает uuid из параметра маршрута.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, &service.ValidationError{Reason: fmt.Sprintf("%s must be a valid uuid", name)}
	}

	return id, nil
}

// listOptions читает необязательные ?limit=&page=.
func listOptions(r *http.Request) (models.ListOptions, error) {
	var opts models.ListOptions
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, &service.ValidationError{Reason: "limit must be an integer"}
		}
		opts.Limit = n
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, &service.ValidationError{Reason: "page must be an integer"}
		}
		opts.Page = n
	}

	return opts, nil
}
