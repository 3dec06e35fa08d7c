// minio предоставляет реализацию storage.ImagesStorage на базе MinIO/S3.
// minio.go — конструктор клиента MinIO: нормализует endpoint,
// настраивает Secure/creds и проверяет наличие целевого бакета.
// images.go — загрузка изображений статей и сборка публичного URL.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-article-feed/internal/config"
	"github.com/pribylovaa/go-article-feed/internal/storage"
)

// ImagesStorage — адаптер MinIO для изображений статей.
type ImagesStorage struct {
	s3      config.S3Config
	upload  config.UploadConfig
	client  *mclient.Client
	baseURL string
}

// New создает и инициализирует клиент MinIO.
// Делает endpoint-перенастройку (убирает схему), подбирает Secure по схеме
// и выполняет fail-fast-проверку доступности бакета.
func New(ctx context.Context, s3 config.S3Config, upload config.UploadConfig) (*ImagesStorage, error) {
	const op = "storage/minio/New"

	endpoint := s3.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(s3.RootUser, s3.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, s3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, s3.Bucket)
	}

	// Без S3_PUBLIC_BASE_URL объект отдаётся по path-style адресу самого MinIO.
	baseURL := strings.TrimRight(s3.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if secure {
			scheme = "https"
		}
		baseURL = scheme + "://" + endpoint + "/" + s3.Bucket
	}

	return &ImagesStorage{s3: s3, upload: upload, client: client, baseURL: baseURL}, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.ImagesStorage = (*ImagesStorage)(nil)
