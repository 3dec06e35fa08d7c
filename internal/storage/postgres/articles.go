package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/internal/storage"
)

// articleColumns — колонки статьи и имя автора (LEFT JOIN: автора может не быть).
// Порядок соответствует scanArticle.
var articleColumns = []string{
	"a.id", "a.title", "a.description", "a.content", "a.category", "a.images", "a.tags",
	"a.author_id", "a.status", "a.published_at", "a.created_at", "a.updated_at",
	"COALESCE(u.first_name, '')",
}

func scanArticle(row pgx.Row) (*models.ArticleRecord, error) {
	var rec models.ArticleRecord
	a := &rec.Article

	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Content,
		&a.Category,
		&a.Images,
		&a.Tags,
		&a.AuthorID,
		&a.Status,
		&a.PublishedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
		&rec.AuthorFirstName,
	); err != nil {
		return nil, err
	}

	if a.PublishedAt != nil {
		t := a.PublishedAt.UTC()
		a.PublishedAt = &t
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()

	return &rec, nil
}

// selectArticles — базовый SELECT статей с автором.
// uuid.UUID — массив [16]byte, squirrel.Eq развернул бы его в IN-список,
// поэтому условия по идентификаторам пишутся выражениями с "?".
func (s *Storage) selectArticles() squirrel.SelectBuilder {
	return s.sb.Select(articleColumns...).
		From("articles a").
		LeftJoin("accounts u ON u.id = a.author_id")
}

// paginate применяет LIMIT/OFFSET, если задан лимит.
func paginate(b squirrel.SelectBuilder, opts models.ListOptions) squirrel.SelectBuilder {
	if opts.Limit <= 0 {
		return b
	}

	return b.Limit(uint64(opts.Limit)).Offset(uint64(opts.Offset()))
}

// queryArticles выполняет SELECT и жадно догружает реакции всех статей страницы.
func (s *Storage) queryArticles(ctx context.Context, b squirrel.SelectBuilder) ([]models.ArticleRecord, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ArticleRecord
	for rows.Next() {
		rec, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		out = append(out, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if err := s.attachInteractions(ctx, out); err != nil {
		return nil, err
	}

	return out, nil
}

// attachInteractions загружает ВСЕ реакции для переданных статей одним запросом.
func (s *Storage) attachInteractions(ctx context.Context, recs []models.ArticleRecord) error {
	if len(recs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(recs))
	index := make(map[uuid.UUID]int, len(recs))
	for i := range recs {
		ids = append(ids, recs[i].Article.ID.String())
		index[recs[i].Article.ID] = i
		recs[i].Interactions = []models.Interaction{}
	}

	rows, err := s.db.Query(ctx, `
	SELECT id, type, user_id, article_id, created_at
	FROM interactions
	WHERE article_id = ANY($1::uuid[])
	ORDER BY created_at, id
	`, ids)
	if err != nil {
		return fmt.Errorf("interactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var in models.Interaction
		if err := rows.Scan(&in.ID, &in.Type, &in.UserID, &in.ArticleID, &in.CreatedAt); err != nil {
			return fmt.Errorf("interactions: scan row: %w", err)
		}
		in.CreatedAt = in.CreatedAt.UTC()

		if i, ok := index[in.ArticleID]; ok {
			recs[i].Interactions = append(recs[i].Interactions, in)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("interactions: rows: %w", err)
	}

	return nil
}

// CreateArticle сохраняет статью в состоянии DRAFT (published_at = NULL)
// независимо от переданных Status/PublishedAt.
func (s *Storage) CreateArticle(ctx context.Context, article *models.Article) (*models.ArticleRecord, error) {
	const op = "storage/postgres/articles/CreateArticle"

	_, err := s.db.Exec(ctx, `
	INSERT INTO articles (id, title, description, content, category, images, tags, author_id, status, published_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL)
	`,
		article.ID,
		article.Title,
		article.Description,
		article.Content,
		string(article.Category),
		nonNil(article.Images),
		nonNil(article.Tags),
		article.AuthorID,
		string(models.StatusDraft),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
			case pgerrcode.ForeignKeyViolation:
				// Автор не существует.
				return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
			}
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.ArticleByID(ctx, article.ID)
}

// ArticleByID возвращает статью в любом состоянии вместе с автором и реакциями.
func (s *Storage) ArticleByID(ctx context.Context, id uuid.UUID) (*models.ArticleRecord, error) {
	const op = "storage/postgres/articles/ArticleByID"

	q, args, err := s.selectArticles().Where("a.id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build: %w", op, err)
	}

	rec, err := scanArticle(s.db.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recs := []models.ArticleRecord{*rec}
	if err := s.attachInteractions(ctx, recs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &recs[0], nil
}

// ListPublished возвращает опубликованные статьи.
// Сортировка фиксирована: published_at DESC, id DESC.
func (s *Storage) ListPublished(ctx context.Context, opts models.ListOptions) ([]models.ArticleRecord, error) {
	const op = "storage/postgres/articles/ListPublished"

	b := s.selectArticles().
		Where(squirrel.Eq{"a.status": string(models.StatusPublished)}).
		OrderBy("a.published_at DESC", "a.id DESC")

	out, err := s.queryArticles(ctx, paginate(b, opts))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ListFeed возвращает персональную ленту viewerID:
// status = PUBLISHED, category ∈ categories, author_id <> viewerID и нет BLOCK от viewerID.
// Пустой набор категорий — пустая лента без обращения к БД.
func (s *Storage) ListFeed(ctx context.Context, viewerID uuid.UUID, categories []models.Category, opts models.ListOptions) ([]models.ArticleRecord, error) {
	const op = "storage/postgres/articles/ListFeed"

	if len(categories) == 0 {
		return []models.ArticleRecord{}, nil
	}

	b := s.selectArticles().
		Where(squirrel.Eq{"a.status": string(models.StatusPublished)}).
		Where(squirrel.Eq{"a.category": fromCategories(categories)}).
		Where("a.author_id <> ?", viewerID).
		Where(`NOT EXISTS (
			SELECT 1 FROM interactions b
			WHERE b.article_id = a.id AND b.user_id = ? AND b.type = ?
		)`, viewerID, string(models.InteractionBlock)).
		OrderBy("a.published_at DESC", "a.id DESC")

	out, err := s.queryArticles(ctx, paginate(b, opts))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ListByAuthor возвращает все статьи автора (включая черновики), created_at DESC, id DESC.
func (s *Storage) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.ArticleRecord, error) {
	const op = "storage/postgres/articles/ListByAuthor"

	b := s.selectArticles().
		Where("a.author_id = ?", authorID).
		OrderBy("a.created_at DESC", "a.id DESC")

	out, err := s.queryArticles(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdateArticle выполняет частичный апдейт статьи (id, authorID).
// Несовпадение пары (нет статьи или она чужая) — storage.ErrNotFound.
func (s *Storage) UpdateArticle(ctx context.Context, id, authorID uuid.UUID, update storage.ArticleUpdate) (*models.ArticleRecord, error) {
	const op = "storage/postgres/articles/UpdateArticle"

	b := s.sb.Update("articles").
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ? AND author_id = ?", id, authorID).
		Suffix("RETURNING id")

	if update.Title != nil {
		b = b.Set("title", *update.Title)
	}

	if update.Description != nil {
		b = b.Set("description", *update.Description)
	}

	if update.Content != nil {
		b = b.Set("content", *update.Content)
	}

	if update.Category != nil {
		b = b.Set("category", string(*update.Category))
	}

	if update.Images != nil {
		b = b.Set("images", nonNil(*update.Images))
	}

	if update.Tags != nil {
		b = b.Set("tags", nonNil(*update.Tags))
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build: %w", op, err)
	}

	var updated uuid.UUID
	if err := s.db.QueryRow(ctx, q, args...).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.ArticleByID(ctx, updated)
}

// DeleteArticle удаляет статью (id, authorID); реакции удаляются каскадно.
func (s *Storage) DeleteArticle(ctx context.Context, id, authorID uuid.UUID) error {
	const op = "storage/postgres/articles/DeleteArticle"

	tag, err := s.db.Exec(ctx, `DELETE FROM articles WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// SetStatus переводит статью (id, authorID) в status одним UPDATE:
// status и published_at меняются вместе, поэтому гонка publish/unpublish
// не может оставить их несогласованными. Повторная публикация уже
// опубликованной статьи сохраняет исходный published_at, чтобы она
// не поднималась в начало ленты.
func (s *Storage) SetStatus(ctx context.Context, id, authorID uuid.UUID, status models.ArticleStatus) (*models.ArticleRecord, error) {
	const op = "storage/postgres/articles/SetStatus"

	var updated uuid.UUID
	err := s.db.QueryRow(ctx, `
	UPDATE articles
	SET status = $3::text,
		published_at = CASE WHEN $3::text = 'PUBLISHED' THEN COALESCE(published_at, now()) ELSE NULL END,
		updated_at = now()
	WHERE id = $1 AND author_id = $2
	RETURNING id
	`, id, authorID, string(status)).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.ArticleByID(ctx, updated)
}

// nonNil заменяет nil-срез пустым: колонки массивов NOT NULL.
func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}

	return in
}
