package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-article-feed/internal/metrics"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/internal/pkg/log"
)

// React записывает реакцию actorID на статью.
//
// action: "like" | "dislike" | "block" (регистр не важен), иначе ErrInvalidInteraction.
// На пару (actor, article) хранится не более одной реакции: повторная реакция
// заменяет тип предыдущей одним атомарным upsert. Статья должна быть опубликована
// или принадлежать actor, иначе ErrNotFound.
func (s *Service) React(ctx context.Context, actorID, articleID uuid.UUID, action string) (*models.Interaction, error) {
	const op = "service/interactions/React"

	lg := log.From(ctx).With("op", op, "user_id", actorID.String(), "article_id", articleID.String())

	typ, ok := models.ParseAction(strings.ToLower(strings.TrimSpace(action)))
	if !ok {
		lg.Warn("invalid_interaction", "action", action)

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInteraction)
	}

	in, err := s.storage.UpsertInteraction(ctx, articleID, actorID, typ)
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	metrics.RecordInteraction(string(typ))
	lg.Info("interaction_recorded", "type", string(typ))

	return in, nil
}

// RemoveReaction удаляет реакцию actorID на статью. ErrNotFound, если её нет.
func (s *Service) RemoveReaction(ctx context.Context, actorID, articleID uuid.UUID) error {
	const op = "service/interactions/RemoveReaction"

	lg := log.From(ctx).With("op", op, "user_id", actorID.String(), "article_id", articleID.String())

	if err := s.storage.DeleteInteraction(ctx, articleID, actorID); err != nil {
		return storageErr(lg, op, err)
	}

	return nil
}
