package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/metrics"
	"github.com/ascendhq/concierge-api/internal/usecase"
)

// ProfileHandler serves the caller's own account plus the admin unlock action.
type ProfileHandler struct {
	Users    entity.UserRepositoryInterface
	UnlockUC *usecase.UnlockProfileUseCase
}

func NewProfileHandler(users entity.UserRepositoryInterface, unlockUC *usecase.UnlockProfileUseCase) *ProfileHandler {
	return &ProfileHandler{Users: users, UnlockUC: unlockUC}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.Users.FindByID(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			WriteError(w, r, http.StatusNotFound, usecase.CodeNotFound, "account not found", nil)
			return
		}
		WriteUseCaseError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()})
		return
	}
	WriteSuccess(w, r, http.StatusOK, "", user)
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		WriteError(w, r, http.StatusBadRequest, usecase.CodeValidation, "full_name is required", nil)
		return
	}

	user, err := h.Users.FindByID(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			WriteError(w, r, http.StatusNotFound, usecase.CodeNotFound, "account not found", nil)
			return
		}
		WriteUseCaseError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()})
		return
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.UpdatedAt = time.Now()
	if err := h.Users.Update(r.Context(), user); err != nil {
		WriteUseCaseError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()})
		return
	}
	WriteSuccess(w, r, http.StatusOK, "profile updated", user)
}

func (h *ProfileHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	admin, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	output, err := h.UnlockUC.Execute(r.Context(), chi.URLParam(r, "id"), admin.ID)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("user", "unlock_profile")
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusOK, "profile unlocked", output)
}
