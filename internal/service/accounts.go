package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/internal/pkg/log"
	"github.com/pribylovaa/go-article-feed/internal/pkg/redact"
	"github.com/pribylovaa/go-article-feed/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 6
	minPhoneLen    = 10
	// bcrypt не принимает пароли длиннее 72 байт.
	maxPasswordBytes = 72
)

// RegisterInput — данные регистрации.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DOB         time.Time
	Password    string
	Preferences []models.Category
}

// UpdateProfileInput — частичный апдейт профиля: обновляются только непустые указатели.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	DOB       *time.Time
}

// Register создаёт аккаунт.
//
// Валидация: имя обязательно, email в корректном формате, телефон не короче 10 символов,
// пароль не короче 6 символов, дата рождения задана и не в будущем, категории из
// фиксированного набора (дубли убираются).
//
// Пароль хэшируется bcrypt до записи. Дубль email/phone — ErrAlreadyExists,
// новая запись при этом не создаётся (уникальные индексы БД).
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	const op = "service/accounts/Register"

	lg := log.From(ctx).With("op", op, "email", redact.Email(in.Email))

	email, err := normalizeEmail(in.Email)
	if err != nil {
		lg.Warn("invalid_email")

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		return nil, fmt.Errorf("%s: %w", op, invalid("firstName is required"))
	}

	phone, err := normalizePhone(in.Phone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateDOB(in.DOB, s.now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validatePassword(in.Password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	prefs, err := normalizePreferences(in.Preferences)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		lg.Error("hash_password_failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	account, err := s.storage.CreateAccount(ctx, &models.Account{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Phone:        phone,
		DOB:          in.DOB.UTC(),
		PasswordHash: hash,
		Preferences:  prefs,
	})
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	lg.Info("account_registered", "user_id", account.ID.String())

	return account, nil
}

// Login выполняет вход по email или телефону и выпускает токен.
// Неизвестный логин и неверный пароль неразличимы: ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, identifier, password string) (string, *models.Account, error) {
	const op = "service/accounts/Login"

	lg := log.From(ctx).With("op", op, "identifier", redact.Identifier(identifier))

	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		identifier = strings.ToLower(identifier)
	}

	if identifier == "" || password == "" {
		return "", nil, fmt.Errorf("%s: %w", op, invalid("emailOrPhone and password are required"))
	}

	account, err := s.storage.AccountByEmailOrPhone(ctx, identifier)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("login_unknown_identifier")

			return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return "", nil, storageErr(lg, op, err)
	}

	if !checkPassword(account.PasswordHash, password) {
		lg.Warn("login_bad_password", "user_id", account.ID.String())

		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.IssueToken(ctx, account.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	return token, account, nil
}

// Account возвращает собственный профиль.
func (s *Service) Account(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	const op = "service/accounts/Account"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	account, err := s.storage.AccountByID(ctx, userID)
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	return account, nil
}

// UpdateProfile частично обновляет профиль.
// Пустой апдейт допустим: сдвигается только updated_at.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.Account, error) {
	const op = "service/accounts/UpdateProfile"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	var upd storage.AccountUpdate

	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if v == "" {
			return nil, fmt.Errorf("%s: %w", op, invalid("firstName must not be empty"))
		}
		upd.FirstName = &v
	}

	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		upd.LastName = &v
	}

	if in.Email != nil {
		v, err := normalizeEmail(*in.Email)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upd.Email = &v
	}

	if in.Phone != nil {
		v, err := normalizePhone(*in.Phone)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upd.Phone = &v
	}

	if in.DOB != nil {
		if err := validateDOB(*in.DOB, s.now()); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		v := in.DOB.UTC()
		upd.DOB = &v
	}

	account, err := s.storage.UpdateAccount(ctx, userID, upd)
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	return account, nil
}

// UpdatePreferences заменяет набор предпочтений целиком (дубли убираются).
func (s *Service) UpdatePreferences(ctx context.Context, userID uuid.UUID, preferences []models.Category) (*models.Account, error) {
	const op = "service/accounts/UpdatePreferences"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	prefs, err := normalizePreferences(preferences)
	if err != nil {
		lg.Warn("invalid_preferences", "err", err)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	account, err := s.storage.UpdatePreferences(ctx, userID, prefs)
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	return account, nil
}

// ChangePassword меняет пароль после проверки текущего.
// Неверный текущий пароль — ErrInvalidCredentials.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	const op = "service/accounts/ChangePassword"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if err := validatePassword(next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	account, err := s.storage.AccountByID(ctx, userID)
	if err != nil {
		return storageErr(lg, op, err)
	}

	if !checkPassword(account.PasswordHash, current) {
		lg.Warn("change_password_bad_current")

		return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	hash, err := hashPassword(next)
	if err != nil {
		lg.Error("hash_password_failed", "err", err)

		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.storage.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return storageErr(lg, op, err)
	}

	lg.Info("password_changed")

	return nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// normalizeEmail проверяет формат email, обрезает пробелы и приводит к нижнему регистру.
func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", invalid("email is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("email has invalid format")
	}

	return strings.ToLower(email), nil
}

func normalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if len([]rune(phone)) < minPhoneLen {
		return "", invalid("phone must be at least %d characters", minPhoneLen)
	}

	return phone, nil
}

func validatePassword(pw string) error {
	if len([]rune(pw)) < minPasswordLen {
		return invalid("password must be at least %d characters", minPasswordLen)
	}

	if len(pw) > maxPasswordBytes {
		return invalid("password must be at most %d bytes", maxPasswordBytes)
	}

	return nil
}

func validateDOB(dob, now time.Time) error {
	if dob.IsZero() {
		return invalid("dob is required")
	}

	if dob.After(now) {
		return invalid("dob must not be in the future")
	}

	return nil
}

// normalizePreferences проверяет категории и убирает дубли, сохраняя порядок.
func normalizePreferences(in []models.Category) ([]models.Category, error) {
	out := make([]models.Category, 0, len(in))
	seen := make(map[models.Category]struct{}, len(in))

	for _, c := range in {
		if !c.Valid() {
			return nil, invalid("unknown category %q", c)
		}

		if _, ok := seen[c]; ok {
			continue
		}

		seen[c] = struct{}{}
		out = append(out, c)
	}

	return out, nil
}
