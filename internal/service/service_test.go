package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-article-feed/internal/config"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/mocks"
	"github.com/stretchr/testify/require"
)

func testCfg() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "unit-secret",
			TokenTTL:  time.Hour,
			Issuer:    "feed-service",
		},
		Upload: config.UploadConfig{
			MaxSizeBytes:        1024,
			AllowedContentTypes: []string{"image/png", "image/jpeg"},
		},
		Limits: config.LimitsConfig{Default: 0, Max: 100},
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *mocks.MockImagesStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	images := mocks.NewMockImagesStorage(ctrl)
	return New(st, images, testCfg()), st, images
}

// record — статья с автором и реакциями для ответов мок-хранилища.
func record(author uuid.UUID, status models.ArticleStatus, interactions ...models.Interaction) models.ArticleRecord {
	a := models.Article{
		ID:       uuid.New(),
		Title:    "t",
		Content:  "c",
		Category: models.CategoryTechnology,
		AuthorID: author,
		Status:   status,
	}
	if status == models.StatusPublished {
		now := time.Now().UTC()
		a.PublishedAt = &now
	}

	return models.ArticleRecord{Article: a, AuthorFirstName: "Bob", Interactions: interactions}
}

func TestValidationError_IsInvalidArgument(t *testing.T) {
	t.Parallel()

	err := invalid("field %s", "x")
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Equal(t, "invalid argument: field x", err.Error())

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "field x", ve.Reason)
}

func TestListOptions(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSvc(t)
	svc.cfg.Limits = config.LimitsConfig{Default: 20, Max: 50}

	got, err := svc.listOptions(models.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 20, got.Limit)

	got, err = svc.listOptions(models.ListOptions{Limit: 500, Page: 2})
	require.NoError(t, err)
	require.Equal(t, 50, got.Limit)
	require.Equal(t, 50, got.Offset())

	_, err = svc.listOptions(models.ListOptions{Limit: -1})
	require.ErrorIs(t, err, ErrInvalidArgument)
}
