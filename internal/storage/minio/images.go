package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"slices"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/go-article-feed/internal/storage"
)

// UploadImage кладёт изображение в бакет под ключом
// "images/<ownerID>/<uuid><ext>" и возвращает его публичный URL.
// Тип и размер повторно проверяются по конфигу: нарушение — storage.ErrInvalidArgument.
func (s *ImagesStorage) UploadImage(ctx context.Context, ownerID uuid.UUID, contentType string, size int64, body io.Reader) (string, error) {
	const op = "storage/minio/images/UploadImage"

	if size <= 0 || size > s.upload.MaxSizeBytes {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	if !slices.Contains(s.upload.AllowedContentTypes, contentType) {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	key := ImageKey(ownerID, contentType)

	_, err := s.client.PutObject(ctx, s.s3.Bucket, key, body, size, mclient.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.baseURL + "/" + key, nil
}

// ImageKey формирует ключ объекта: images/<ownerID>/<uuid><ext>.
func ImageKey(ownerID uuid.UUID, contentType string) string {
	return path.Join("images", ownerID.String(), uuid.NewString()+extension(contentType))
}

func extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
