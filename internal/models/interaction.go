package models

import (
	"time"

	"github.com/google/uuid"
)

// InteractionType — тип реакции пользователя на статью.
type InteractionType string

const (
	InteractionLike    InteractionType = "LIKE"
	InteractionDislike InteractionType = "DISLIKE"
	// InteractionBlock скрывает статью из ленты заблокировавшего пользователя.
	InteractionBlock InteractionType = "BLOCK"
)

// ParseAction переводит действие клиента ("like"/"dislike"/"block") в тип реакции.
// Второе значение false — действие не распознано.
func ParseAction(action string) (InteractionType, bool) {
	switch action {
	case "like":
		return InteractionLike, true
	case "dislike":
		return InteractionDislike, true
	case "block":
		return InteractionBlock, true
	default:
		return "", false
	}
}

// Interaction — реакция пользователя на статью.
// На пару (UserID, ArticleID) существует не более одной записи.
type Interaction struct {
	ID        uuid.UUID       `json:"id"`
	Type      InteractionType `json:"type"`
	UserID    uuid.UUID       `json:"userId"`
	ArticleID uuid.UUID       `json:"articleId"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Reactions — агрегированные счётчики реакций статьи
// и собственная реакция просматривающего (пустая строка — реакции нет).
type Reactions struct {
	Likes          int
	Dislikes       int
	Blocks         int
	ViewerReaction InteractionType
}
