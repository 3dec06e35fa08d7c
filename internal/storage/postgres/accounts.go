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

// accountColumns — единый список колонок таблицы accounts для SELECT/RETURNING.
const accountColumns = `
id, first_name, last_name, email, phone, dob, password_hash, preferences, created_at, updated_at
`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	var prefs []string

	if err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.Phone,
		&account.DOB,
		&account.PasswordHash,
		&prefs,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}

	account.Preferences = toCategories(prefs)
	account.DOB = account.DOB.UTC()
	account.CreatedAt = account.CreatedAt.UTC()
	account.UpdatedAt = account.UpdatedAt.UTC()

	return &account, nil
}

// accountErr приводит ошибки драйвера к ошибкам контракта storage.
func accountErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// CreateAccount вставляет новый аккаунт.
// Ошибки: storage.ErrAlreadyExists при дубле email или phone.
func (s *Storage) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	const op = "storage/postgres/accounts/CreateAccount"

	q := `
	INSERT INTO accounts (id, first_name, last_name, email, phone, dob, password_hash, preferences)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING
	` + accountColumns

	row := s.db.QueryRow(ctx, q,
		account.ID,
		account.FirstName,
		account.LastName,
		account.Email,
		account.Phone,
		account.DOB,
		account.PasswordHash,
		fromCategories(account.Preferences),
	)

	result, err := scanAccount(row)
	if err != nil {
		return nil, accountErr(op, err)
	}

	return result, nil
}

func (s *Storage) AccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	const op = "storage/postgres/accounts/AccountByID"

	row := s.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	result, err := scanAccount(row)
	if err != nil {
		return nil, accountErr(op, err)
	}

	return result, nil
}

// AccountByEmailOrPhone ищет аккаунт по email или телефону.
// email и phone уникальны по отдельности, но значение одного теоретически
// может совпасть со значением другого у чужого аккаунта: email в приоритете.
func (s *Storage) AccountByEmailOrPhone(ctx context.Context, identifier string) (*models.Account, error) {
	const op = "storage/postgres/accounts/AccountByEmailOrPhone"

	q := `
	SELECT ` + accountColumns + `
	FROM accounts
	WHERE email = $1 OR phone = $1
	ORDER BY (email = $1) DESC
	LIMIT 1
	`

	result, err := scanAccount(s.db.QueryRow(ctx, q, identifier))
	if err != nil {
		return nil, accountErr(op, err)
	}

	return result, nil
}

// UpdateAccount выполняет частичный апдейт: обновляет только поля,
// указанные непустыми pointer-полями, и всегда сдвигает updated_at = now().
func (s *Storage) UpdateAccount(ctx context.Context, id uuid.UUID, update storage.AccountUpdate) (*models.Account, error) {
	const op = "storage/postgres/accounts/UpdateAccount"

	b := s.sb.Update("accounts").
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", id).
		Suffix("RETURNING " + accountColumns)

	if update.FirstName != nil {
		b = b.Set("first_name", *update.FirstName)
	}

	if update.LastName != nil {
		b = b.Set("last_name", *update.LastName)
	}

	if update.Email != nil {
		b = b.Set("email", *update.Email)
	}

	if update.Phone != nil {
		b = b.Set("phone", *update.Phone)
	}

	if update.DOB != nil {
		b = b.Set("dob", *update.DOB)
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build: %w", op, err)
	}

	result, err := scanAccount(s.db.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, accountErr(op, err)
	}

	return result, nil
}

// UpdatePreferences заменяет набор предпочтений целиком.
func (s *Storage) UpdatePreferences(ctx context.Context, id uuid.UUID, preferences []models.Category) (*models.Account, error) {
	const op = "storage/postgres/accounts/UpdatePreferences"

	q := `
	UPDATE accounts
	SET preferences = $2, updated_at = now()
	WHERE id = $1
	RETURNING
	` + accountColumns

	result, err := scanAccount(s.db.QueryRow(ctx, q, id, fromCategories(preferences)))
	if err != nil {
		return nil, accountErr(op, err)
	}

	return result, nil
}

func (s *Storage) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	const op = "storage/postgres/accounts/UpdatePasswordHash"

	tag, err := s.db.Exec(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func toCategories(in []string) []models.Category {
	out := make([]models.Category, 0, len(in))
	for _, c := range in {
		out = append(out, models.Category(c))
	}

	return out
}

func fromCategories(in []models.Category) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		out = append(out, string(c))
	}

	return out
}
