// errors стандартизирует ответы об ошибках HTTP-слоя feed-сервиса.
// На вход он принимает ошибку сервиса, а на выход даёт:
//   - корректный HTTP-статус;
//   - конверт {success:false, message} с кратким безопасным сообщением.
//
// Источник истинности по ошибкам: sentinel-ошибки internal/service.
// Всё нераспознанное становится 500 без утечки деталей.
package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-article-feed/internal/http/response"
	"github.com/pribylovaa/go-article-feed/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

var (
	// ErrBadRequest — тело или параметры запроса не разобраны транспортом.
	ErrBadRequest = errors.New("bad request")
	// ErrTooManyRequests — превышен лимит попыток.
	ErrTooManyRequests = errors.New("too many requests")
)

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и конверт ответа.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500, чтобы не маскировать баг;
//   - ValidationError - 400 с причиной из ошибки;
//   - sentinel-ошибки сервиса - по таблице ниже;
//   - отмена контекста - 499, дедлайн - 504;
//   - остальное - 500/internal error.
func ToHTTP(err error) (int, response.Envelope) {
	status, msg := classify(err)

	return status, response.Envelope{Message: msg, Success: false}
}

func classify(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "internal error"
	}

	var ve *service.ValidationError
	if errors.As(err, &ve) && ve.Reason != "" {
		return http.StatusBadRequest, ve.Reason
	}

	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "invalid request body"
	case errors.Is(err, service.ErrInvalidInteraction):
		return http.StatusBadRequest, "invalid interaction type"
	case errors.Is(err, service.ErrUnsupportedImage):
		return http.StatusBadRequest, "unsupported image type"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid argument"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict, "already exists"
	case errors.Is(err, service.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, "image too large"
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, "too many requests, try again later"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "request canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// WriteError — хелпер для HTTP-хендлеров и мидлваров.
// Пишет статус и конверт, прокидывает X-Request-Id из запроса в ответ.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := ToHTTP(err)
	if r != nil {
		if rid := r.Header.Get("X-Request-Id"); rid != "" {
			w.Header().Set("X-Request-Id", rid)
		}
	}

	response.JSON(w, status, env)
}
