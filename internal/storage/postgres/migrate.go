package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/go-article-feed/migrations"
)

// Migrate применяет ещё не применённые up-миграции из встроенного набора.
// Версия миграции — числовой префикс имени файла (1_init.up.sql -> 1).
// Каждая миграция выполняется в отдельной транзакции вместе с записью в schema_migrations.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage/postgres/Migrate"

	files, err := upMigrations(migrations.FS)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, m := range files {
		body, err := fs.ReadFile(migrations.FS, m.name)
		if err != nil {
			return fmt.Errorf("%s: read %s: %w", op, m.name, err)
		}

		err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
			tag, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT DO NOTHING`, m.version)
			if err != nil {
				return err
			}

			// Уже применена.
			if tag.RowsAffected() == 0 {
				return nil
			}

			_, err = tx.Exec(ctx, string(body))
			return err
		})
		if err != nil {
			return fmt.Errorf("%s: apply %s: %w", op, m.name, err)
		}
	}

	return nil
}

type migration struct {
	version int
	name    string
}

// upMigrations возвращает *.up.sql, отсортированные по версии.
func upMigrations(fsys fs.FS) ([]migration, error) {
	names, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, err
	}

	out := make([]migration, 0, len(names))
	for _, name := range names {
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %q: missing version prefix", name)
		}

		v, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %q: bad version: %w", name, err)
		}

		out = append(out, migration{version: v, name: name})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })

	return out, nil
}
