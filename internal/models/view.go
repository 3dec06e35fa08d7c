package models

import (
	"time"

	"github.com/google/uuid"
)

// UnknownAuthor — отображаемое имя, если запись автора отсутствует.
const UnknownAuthor = "Unknown Author"

// ArticleView — статья в том виде, в котором её отдаёт API:
// с именем автора и агрегированными реакциями.
type ArticleView struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Content        string          `json:"content"`
	Category       Category        `json:"category"`
	Images         []string        `json:"images"`
	Tags           []string        `json:"tags"`
	AuthorID       uuid.UUID       `json:"authorId"`
	AuthorName     string          `json:"authorName"`
	Status         ArticleStatus   `json:"status"`
	PublishedAt    *time.Time      `json:"publishedAt"`
	Likes          int             `json:"likes"`
	Dislikes       int             `json:"dislikes"`
	Blocks         int             `json:"blocks"`
	IsLiked        bool            `json:"isLiked"`
	IsDisliked     bool            `json:"isDisliked"`
	ViewerReaction InteractionType `json:"viewerReaction,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
