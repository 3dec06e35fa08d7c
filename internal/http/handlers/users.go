package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-article-feed/internal/errors"
	"github.com/pribylovaa/go-article-feed/internal/http/response"
	"github.com/pribylovaa/go-article-feed/internal/service"
)

// updateProfileRequest: отсутствующие поля не меняются.
type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	DOB       *string `json:"dob"`
}

type preferencesRequest struct {
	Preferences []string `json:"preferences"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	acc, err := h.svc.Account(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Fetched user successfully", acc)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var in updateProfileRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	upd := service.UpdateProfileInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	}
	if in.DOB != nil {
		dob, err := parseDate(*in.DOB)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
		upd.DOB = &dob
	}

	acc, err := h.svc.UpdateProfile(r.Context(), uid, upd)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "User updated successfully", acc)
}

func (h *Handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var in preferencesRequest
	if err := decodeStrict(r, &in); err != nil || in.Preferences == nil {
		apierrors.WriteError(w, r, &service.ValidationError{Reason: "preferences must be an array of categories"})
		return
	}

	acc, err := h.svc.UpdatePreferences(r.Context(), uid, toCategories(in.Preferences))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Preferences updated successfully", acc)
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var in changePasswordRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), uid, in.CurrentPassword, in.NewPassword); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Password changed successfully", nil)
}
