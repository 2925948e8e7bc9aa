package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/usecase"
)

type NotificationHandler struct {
	Notifications entity.NotificationRepositoryInterface
}

func NewNotificationHandler(notifications entity.NotificationRepositoryInterface) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	items, err := h.Notifications.ListByUserID(r.Context(), identity.ID)
	if err != nil {
		WriteUseCaseError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()})
		return
	}
	if items == nil {
		items = []*entity.Notification{}
	}
	WriteSuccess(w, r, http.StatusOK, "", items)
}

// MarkRead scopes the write to the caller so one user cannot touch another's
// notifications.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	updated, err := h.Notifications.MarkRead(r.Context(), chi.URLParam(r, "id"), identity.ID)
	if err != nil {
		WriteUseCaseError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()})
		return
	}
	if !updated {
		WriteError(w, r, http.StatusNotFound, usecase.CodeNotFound, "notification not found", nil)
		return
	}
	WriteSuccess(w, r, http.StatusOK, "notification marked as read", nil)
}
