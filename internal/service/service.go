// service содержит бизнес-логику feed-сервиса:
//   - регистрация, вход и профиль аккаунта, выпуск/проверка токенов;
//   - статьи и их жизненный цикл DRAFT <-> PUBLISHED;
//   - персональная лента и агрегирование реакций;
//   - запись реакций и загрузка изображений.
//
// Service не хранит состояние запроса и безопасен для конкурентного использования
// при потокобезопасных хранилищах. Идентификатор пользователя передаётся
// в методы явно: сервис доверяет уже проверенному транспортом viewerID.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-article-feed/internal/config"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/internal/storage"
)

var (
	// ErrInvalidArgument — некорректные входные данные. Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidInteraction — нераспознанный тип реакции. Транспорт: 400.
	ErrInvalidInteraction = errors.New("invalid interaction type")
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден. Транспорт: 401.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken — токен некорректен по формату/подписи. Транспорт: 401.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired — срок действия токена истёк. Транспорт: 401.
	ErrTokenExpired = errors.New("token expired")
	// ErrUnauthenticated — операция требует аутентификации. Транспорт: 401.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound — сущность не найдена либо не принадлежит запрашивающему. Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — конфликт уникальности (email/phone). Транспорт: 409.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnsupportedImage — тип файла не входит в allow-list. Транспорт: 400.
	ErrUnsupportedImage = errors.New("unsupported image type")
	// ErrImageTooLarge — файл превышает лимит размера. Транспорт: 413.
	ErrImageTooLarge = errors.New("image too large")
	// ErrInternal — внутренняя ошибка сервиса. Транспорт: 500.
	ErrInternal = errors.New("internal")
)

// ValidationError — ошибка валидации с причиной, которую можно показать клиенту.
// errors.Is(err, ErrInvalidArgument) == true.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid argument: " + e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidArgument }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Service — описывает бизнес-логику feed-сервиса.
type Service struct {
	cfg     *config.Config
	storage storage.Storage
	images  storage.ImagesStorage
	now     func() time.Time
}

// New создает новый экземпляр Service.
// images может быть nil: тогда загрузка изображений возвращает ErrInternal.
func New(storage storage.Storage, images storage.ImagesStorage, cfg *config.Config) *Service {
	return &Service{
		cfg:     cfg,
		storage: storage,
		images:  images,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// storageErr переводит ошибку хранилища в ошибку сервиса.
// Отмена/дедлайн контекста сохраняются, чтобы транспорт отдал 499/504.
func storageErr(lg *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		lg.Warn("not_found")

		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, storage.ErrAlreadyExists):
		lg.Warn("already_exists")

		return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		lg.Warn("storage_context_done", "err", err)

		return fmt.Errorf("%s: %w", op, err)
	default:
		lg.Error("storage_error", "err", err)

		return fmt.Errorf("%s: %w", op, ErrInternal)
	}
}

// listOptions применяет лимиты по умолчанию и верхнюю границу из конфига.
func (s *Service) listOptions(opts models.ListOptions) (models.ListOptions, error) {
	if opts.Limit < 0 || opts.Page < 0 {
		return opts, invalid("limit and page must be non-negative")
	}

	if opts.Limit == 0 {
		opts.Limit = s.cfg.Limits.Default
	}

	if s.cfg.Limits.Max > 0 && opts.Limit > s.cfg.Limits.Max {
		opts.Limit = s.cfg.Limits.Max
	}

	return opts, nil
}
