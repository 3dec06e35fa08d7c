package service

import (
	"github.com/google/uuid"
	"github.com/pribylovaa/go-article-feed/internal/models"
)

// Aggregate считает реакции статьи по полному набору её взаимодействий.
//
// viewerID == uuid.Nil — анонимный просмотр: ViewerReaction остаётся пустым.
// Функция чистая: без побочных эффектов и ошибок, пустой набор даёт нули.
func Aggregate(interactions []models.Interaction, viewerID uuid.UUID) models.Reactions {
	var r models.Reactions

	for _, in := range interactions {
		switch in.Type {
		case models.InteractionLike:
			r.Likes++
		case models.InteractionDislike:
			r.Dislikes++
		case models.InteractionBlock:
			r.Blocks++
		}

		if viewerID != uuid.Nil && in.UserID == viewerID {
			r.ViewerReaction = in.Type
		}
	}

	return r
}

// NewView собирает представление статьи для API.
func NewView(rec models.ArticleRecord, viewerID uuid.UUID) models.ArticleView {
	a := rec.Article
	r := Aggregate(rec.Interactions, viewerID)

	author := rec.AuthorFirstName
	if author == "" {
		author = models.UnknownAuthor
	}

	return models.ArticleView{
		ID:             a.ID,
		Title:          a.Title,
		Description:    a.Description,
		Content:        a.Content,
		Category:       a.Category,
		Images:         nonNil(a.Images),
		Tags:           nonNil(a.Tags),
		AuthorID:       a.AuthorID,
		AuthorName:     author,
		Status:         a.Status,
		PublishedAt:    a.PublishedAt,
		Likes:          r.Likes,
		Dislikes:       r.Dislikes,
		Blocks:         r.Blocks,
		IsLiked:        r.ViewerReaction == models.InteractionLike,
		IsDisliked:     r.ViewerReaction == models.InteractionDislike,
		ViewerReaction: r.ViewerReaction,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func newViews(recs []models.ArticleRecord, viewerID uuid.UUID) []models.ArticleView {
	out := make([]models.ArticleView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, NewView(rec, viewerID))
	}

	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}

	return in
}
