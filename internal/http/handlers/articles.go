package handlers

import (
	"net/http"

	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/go-article-feed/internal/errors"
	"github.com/pribylovaa/go-article-feed/internal/http/middleware"
	"github.com/pribylovaa/go-article-feed/internal/http/response"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/internal/service"
)

const msgArticlesFetched = "Articles fetched successfully"

type createArticleRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
}

// updateArticleRequest: отсутствующие поля не меняются.
type updateArticleRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Content     *string   `json:"content"`
	Category    *string   `json:"category"`
	Images      *[]string `json:"images"`
	Tags        *[]string `json:"tags"`
}

func (h *Handlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	// Анонимный запрос: viewerID = uuid.Nil, флаги реакций не выставляются.
	viewerID, _ := middleware.UserID(r.Context())

	list, err := h.svc.PublicArticles(r.Context(), viewerID, opts)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, msgArticlesFetched, list)
}

func (h *Handlers) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := h.svc.PublicArticle(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Article fetched successfully", view)
}

func (h *Handlers) ListMine(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	list, err := h.svc.MyArticles(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, msgArticlesFetched, list)
}

func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	opts, err := listOptions(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	list, err := h.svc.Feed(r.Context(), uid, opts)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, msgArticlesFetched, list)
}

// GetArticle: аутентификация необязательна, черновик виден только автору.
func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	viewerID, _ := middleware.UserID(r.Context())

	view, err := h.svc.Article(r.Context(), id, viewerID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Article fetched successfully", view)
}

func (h *Handlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var in createArticleRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	view, err := h.svc.CreateArticle(r.Context(), uid, service.ArticleInput{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Category:    models.Category(in.Category),
		Images:      in.Images,
		Tags:        in.Tags,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusCreated, "Article created successfully", view)
}

func (h *Handlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	uid, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}

	var in updateArticleRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	upd := service.UpdateArticleInput{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Images:      in.Images,
		Tags:        in.Tags,
	}
	if in.Category != nil {
		c := models.Category(*in.Category)
		upd.Category = &c
	}

	view, err := h.svc.UpdateArticle(r.Context(), uid, id, upd)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Article updated successfully", view)
}

func (h *Handlers) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	uid, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteArticle(r.Context(), uid, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Article deleted successfully", nil)
}

func (h *Handlers) Publish(w http.ResponseWriter, r *http.Request) {
	uid, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Publish(r.Context(), uid, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Article published successfully", view)
}

func (h *Handlers) Unpublish(w http.ResponseWriter, r *http.Request) {
	uid, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Unpublish(r.Context(), uid, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Article unpublished successfully", view)
}

func (h *Handlers) ownerAndID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	uid, ok := requireUser(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return uuid.Nil, uuid.Nil, false
	}

	return uid, id, true
}
