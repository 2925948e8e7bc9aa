package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/logger"
	"github.com/ascendhq/concierge-api/internal/usecase"
)

// ResourceHandler serves the tiered resource library. Premium entries are
// visible only to admins and to clients with an unlocked profile.
type ResourceHandler struct {
	Resources entity.ResourceRepositoryInterface
	Users     entity.UserRepositoryInterface
}

func NewResourceHandler(
	resources entity.ResourceRepositoryInterface,
	users entity.UserRepositoryInterface,
) *ResourceHandler {
	return &ResourceHandler{Resources: resources, Users: users}
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	premium, err := h.premiumAccess(r, identity)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}

	items, err := h.Resources.List(r.Context(), premium)
	if err != nil {
		WriteUseCaseError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()})
		return
	}
	if items == nil {
		items = []*entity.Resource{}
	}
	WriteSuccess(w, r, http.StatusOK, "", items)
}

type downloadResponse struct {
	FileURL string `json:"file_url"`
}

func (h *ResourceHandler) Download(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	res, err := h.Resources.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrResourceNotFound) {
			WriteError(w, r, http.StatusNotFound, usecase.CodeNotFound, "resource not found", nil)
			return
		}
		WriteUseCaseError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()})
		return
	}

	if res.Tier == entity.TierPremium {
		premium, perr := h.premiumAccess(r, identity)
		if perr != nil {
			WriteUseCaseError(w, r, perr)
			return
		}
		if !premium {
			WriteError(w, r, http.StatusForbidden, usecase.CodeForbidden,
				"premium resources require an unlocked profile", nil)
			return
		}
	}

	// Count is advisory; a failed increment should not block the download.
	if err := h.Resources.IncrementDownloads(r.Context(), res.ID); err != nil {
		logResourceCountFailure(res.ID, err)
	}
	WriteSuccess(w, r, http.StatusOK, "", downloadResponse{FileURL: res.FileURL})
}

func logResourceCountFailure(id string, err error) {
	logger.Get().Warn("failed to increment download count",
		zap.String("resource_id", id), zap.Error(err))
}

func (h *ResourceHandler) premiumAccess(r *http.Request, identity Identity) (bool, error) {
	if identity.Role == entity.RoleAdmin {
		return true, nil
	}
	user, err := h.Users.FindByID(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return false, nil
		}
		return false, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()}
	}
	return user.ProfileUnlocked, nil
}
