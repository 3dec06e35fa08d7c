// storage определяет контракты слоя хранилищ feed-сервиса.
//
// Реляционная часть (аккаунты, статьи, реакции) реализована в storage/postgres,
// загрузка изображений — в storage/minio.
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-article-feed/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище (или не принадлежит запрашивающему).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушена уникальность (email/phone аккаунта).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument — объект не удовлетворяет ограничениям хранилища (тип/размер).
	ErrInvalidArgument = errors.New("invalid argument")
)

// AccountUpdate — частичный апдейт профиля.
// Обновляются только непустые указатели.
type AccountUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	DOB       *time.Time
}

// ArticleUpdate — частичный апдейт содержимого статьи.
// Статус и published_at этим апдейтом не меняются.
type ArticleUpdate struct {
	Title       *string
	Description *string
	Content     *string
	Category    *models.Category
	Images      *[]string
	Tags        *[]string
}

// Accounts — репозиторий учётных записей.
type Accounts interface {
	// CreateAccount вставляет аккаунт. ErrAlreadyExists при дубле email/phone.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	AccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	// AccountByEmailOrPhone ищет аккаунт, у которого email или phone равен identifier.
	AccountByEmailOrPhone(ctx context.Context, identifier string) (*models.Account, error)
	// UpdateAccount выполняет частичное обновление и всегда сдвигает updated_at.
	UpdateAccount(ctx context.Context, id uuid.UUID, update AccountUpdate) (*models.Account, error)
	// UpdatePreferences полностью заменяет набор предпочтений.
	UpdatePreferences(ctx context.Context, id uuid.UUID, preferences []models.Category) (*models.Account, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// Articles — репозиторий статей.
//
// Все методы, возвращающие models.ArticleRecord, загружают жадно имя автора
// и ВСЕ реакции на статью.
type Articles interface {
	// CreateArticle сохраняет статью в состоянии DRAFT.
	CreateArticle(ctx context.Context, article *models.Article) (*models.ArticleRecord, error)
	// ArticleByID возвращает статью в любом состоянии.
	ArticleByID(ctx context.Context, id uuid.UUID) (*models.ArticleRecord, error)
	// ListPublished — опубликованные статьи, published_at DESC, id DESC.
	ListPublished(ctx context.Context, opts models.ListOptions) ([]models.ArticleRecord, error)
	// ListFeed — опубликованные статьи с category ∈ categories, кроме статей
	// viewerID и статей, заблокированных viewerID. Порядок как у ListPublished.
	ListFeed(ctx context.Context, viewerID uuid.UUID, categories []models.Category, opts models.ListOptions) ([]models.ArticleRecord, error)
	// ListByAuthor — статьи автора в любом состоянии, created_at DESC, id DESC.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.ArticleRecord, error)
	// UpdateArticle обновляет содержимое статьи (id, authorID).
	// Несовпадение пары — ErrNotFound.
	UpdateArticle(ctx context.Context, id, authorID uuid.UUID, update ArticleUpdate) (*models.ArticleRecord, error)
	// DeleteArticle удаляет статью (id, authorID) вместе с реакциями.
	DeleteArticle(ctx context.Context, id, authorID uuid.UUID) error
	// SetStatus атомарно переводит статью (id, authorID) в status и
	// выставляет published_at (now() для PUBLISHED, NULL для DRAFT).
	SetStatus(ctx context.Context, id, authorID uuid.UUID, status models.ArticleStatus) (*models.ArticleRecord, error)
}

// Interactions — репозиторий реакций.
type Interactions interface {
	// UpsertInteraction одним оператором создаёт или заменяет реакцию
	// (userID, articleID). Статья должна быть опубликована либо принадлежать userID,
	// иначе ErrNotFound.
	UpsertInteraction(ctx context.Context, articleID, userID uuid.UUID, typ models.InteractionType) (*models.Interaction, error)
	// DeleteInteraction удаляет реакцию пользователя. ErrNotFound, если её нет.
	DeleteInteraction(ctx context.Context, articleID, userID uuid.UUID) error
}

// Storage — верхнеуровневый контракт реляционного хранилища.
type Storage interface {
	Accounts
	Articles
	Interactions
	Ping(ctx context.Context) error
	Close()
}

// ImagesStorage — контракт загрузки изображений.
type ImagesStorage interface {
	// UploadImage сохраняет объект и возвращает его публичный URL.
	UploadImage(ctx context.Context, ownerID uuid.UUID, contentType string, size int64, body io.Reader) (string, error)
}
