package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/go-article-feed/internal/errors"
	"github.com/pribylovaa/go-article-feed/internal/http/middleware"
	"github.com/pribylovaa/go-article-feed/internal/http/response"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/internal/service"
)

type registerRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	DOB         string   `json:"dob"`
	Password    string   `json:"password"`
	Preferences []string `json:"preferences"`
}

// loginRequest: идентификатор принимается как emailOrPhone или identifier.
type loginRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	Identifier   string `json:"identifier"`
	Password     string `json:"password"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	dob, err := parseDate(in.DOB)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	acc, err := h.svc.Register(r.Context(), service.RegisterInput{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		DOB:         dob,
		Password:    in.Password,
		Preferences: toCategories(in.Preferences),
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusCreated, "User registered successfully", acc)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	identifier := in.EmailOrPhone
	if identifier == "" {
		identifier = in.Identifier
	}

	token, acc, err := h.svc.Login(r.Context(), identifier, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.WithToken(w, http.StatusOK, "Login successful", token, acc)
}

// parseDate принимает дату как YYYY-MM-DD или RFC3339.
// Пустая строка возвращает нулевое время: обязательность проверяет сервис.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &service.ValidationError{Reason: "dob must be a date in YYYY-MM-DD format"}
	}

	return t.UTC(), nil
}

func toCategories(in []string) []models.Category {
	if in == nil {
		return nil
	}

	out := make([]models.Category, 0, len(in))
	for _, c := range in {
		out = append(out, models.Category(c))
	}

	return out
}

// requireUser достаёт идентификатор, выставленный AuthBearer.
// Без него пишет 401 и возвращает false.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthenticated)
		return uid, false
	}

	return uid, true
}
