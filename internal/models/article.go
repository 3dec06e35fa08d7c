package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus — состояние жизненного цикла статьи.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusPublished ArticleStatus = "PUBLISHED"
)

// Article — статья автора.
//
// Инвариант: PublishedAt != nil тогда и только тогда, когда Status == StatusPublished.
type Article struct {
	ID          uuid.UUID
	Title       string
	Description string
	Content     string
	Category    Category
	Images      []string
	Tags        []string
	AuthorID    uuid.UUID
	Status      ArticleStatus
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ArticleRecord — статья вместе с жадно загруженными связями.
//
// Контракт загрузки (его соблюдают все методы хранилища, возвращающие ArticleRecord):
//   - AuthorFirstName — имя автора, пустая строка, если запись автора отсутствует;
//   - Interactions — ВСЕ реакции на статью (агрегатор полагается на полноту набора).
type ArticleRecord struct {
	Article         Article
	AuthorFirstName string
	Interactions    []Interaction
}

// ListOptions — параметры выборки списков.
//
// Особенности:
//   - Limit == 0 — без ограничения (весь набор);
//   - Page считается с 1; значения < 1 трактуются как первая страница.
type ListOptions struct {
	Limit int
	Page  int
}

// Offset возвращает смещение для страницы.
func (o ListOptions) Offset() int {
	if o.Limit <= 0 || o.Page <= 1 {
		return 0
	}

	return (o.Page - 1) * o.Limit
}
