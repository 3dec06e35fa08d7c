package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-article-feed/internal/pkg/log"
	"github.com/pribylovaa/go-article-feed/internal/storage"
)

// UploadImage проверяет тип и размер изображения и сохраняет его.
// Возвращает публичный URL объекта.
func (s *Service) UploadImage(ctx context.Context, ownerID uuid.UUID, contentType string, size int64, body io.Reader) (string, error) {
	const op = "service/images/UploadImage"

	lg := log.From(ctx).With("op", op, "user_id", ownerID.String(), "content_type", contentType, "size", size)

	if !slices.Contains(s.cfg.Upload.AllowedContentTypes, contentType) {
		lg.Warn("image_unsupported_type")

		return "", fmt.Errorf("%s: %w", op, ErrUnsupportedImage)
	}

	if size <= 0 {
		return "", fmt.Errorf("%s: %w", op, invalid("file is empty"))
	}

	if size > s.cfg.Upload.MaxSizeBytes {
		lg.Warn("image_too_large")

		return "", fmt.Errorf("%s: %w", op, ErrImageTooLarge)
	}

	if s.images == nil {
		lg.Error("images_storage_not_configured")

		return "", fmt.Errorf("%s: %w", op, ErrInternal)
	}

	url, err := s.images.UploadImage(ctx, ownerID, contentType, size, body)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidArgument) {
			return "", fmt.Errorf("%s: %w", op, invalid("image rejected by storage"))
		}

		return "", storageErr(lg, op, err)
	}

	lg.Info("image_uploaded")

	return url, nil
}
