package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/internal/storage"
)

// UpsertInteraction создаёт или заменяет реакцию одним оператором.
//
// Проверка существования статьи встроена в INSERT ... SELECT: реагировать можно
// на опубликованную статью или на собственную. Если условие не выполнено,
// строка не вставляется и возвращается storage.ErrNotFound.
// Повторная реакция того же пользователя заменяет тип (ON CONFLICT по (user_id, article_id)).
func (s *Storage) UpsertInteraction(ctx context.Context, articleID, userID uuid.UUID, typ models.InteractionType) (*models.Interaction, error) {
	const op = "storage/postgres/interactions/UpsertInteraction"

	var in models.Interaction
	err := s.db.QueryRow(ctx, `
	INSERT INTO interactions (id, type, user_id, article_id)
	SELECT $1, $2, $3, a.id
	FROM articles a
	WHERE a.id = $4 AND (a.status = 'PUBLISHED' OR a.author_id = $3)
	ON CONFLICT (user_id, article_id) DO UPDATE SET type = EXCLUDED.type
	RETURNING id, type, user_id, article_id, created_at
	`, uuid.New(), string(typ), userID, articleID).Scan(
		&in.ID,
		&in.Type,
		&in.UserID,
		&in.ArticleID,
		&in.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			// Пользователь удалён, либо статья удалена между чтением и вставкой.
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	in.CreatedAt = in.CreatedAt.UTC()

	return &in, nil
}

// DeleteInteraction удаляет реакцию пользователя на статью.
func (s *Storage) DeleteInteraction(ctx context.Context, articleID, userID uuid.UUID) error {
	const op = "storage/postgres/interactions/DeleteInteraction"

	tag, err := s.db.Exec(ctx,
		`DELETE FROM interactions WHERE article_id = $1 AND user_id = $2`, articleID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
