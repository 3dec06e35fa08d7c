package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-article-feed/internal/errors"
	"github.com/pribylovaa/go-article-feed/internal/http/response"
)

// reactRequest: действие передаётся как type или action ("like"/"dislike"/"block").
type reactRequest struct {
	Type   string `json:"type"`
	Action string `json:"action"`
}

func (h *Handlers) React(w http.ResponseWriter, r *http.Request) {
	uid, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}

	var in reactRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	action := in.Type
	if action == "" {
		action = in.Action
	}

	it, err := h.svc.React(r.Context(), uid, id, action)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Interaction recorded successfully", it)
}

func (h *Handlers) RemoveReaction(w http.ResponseWriter, r *http.Request) {
	uid, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}

	if err := h.svc.RemoveReaction(r.Context(), uid, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Interaction removed successfully", nil)
}
