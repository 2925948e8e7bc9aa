package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/metrics"
	"github.com/ascendhq/concierge-api/internal/usecase"
)

// InterviewHandler is the Application Tracker surface: admins maintain the
// records, clients read their own.
type InterviewHandler struct {
	InterviewUC *usecase.InterviewUseCase
}

func NewInterviewHandler(interviewUC *usecase.InterviewUseCase) *InterviewHandler {
	return &InterviewHandler{InterviewUC: interviewUC}
}

func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateInterviewInput
	if !decodeJSON(w, r, &input) {
		return
	}

	iv, err := h.InterviewUC.Create(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("interview", "create")
	WriteSuccess(w, r, http.StatusCreated, "interview created", iv)
}

func (h *InterviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateInterviewInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")

	iv, err := h.InterviewUC.Update(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	WriteSuccess(w, r, http.StatusOK, "interview updated", iv)
}

func (h *InterviewHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateInterviewStatusInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")

	output, err := h.InterviewUC.UpdateStatus(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("interview", "status_"+output.Interview.Status)
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusOK, "interview status updated", output)
}

func (h *InterviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.InterviewUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	WriteSuccess(w, r, http.StatusOK, "interview deleted", nil)
}

// ListForUser is the admin view of one client's tracker.
func (h *InterviewHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	interviews, err := h.InterviewUC.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	if interviews == nil {
		interviews = []*entity.Interview{}
	}
	WriteSuccess(w, r, http.StatusOK, "", interviews)
}

// ListMine is the client view of their own tracker.
func (h *InterviewHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	interviews, err := h.InterviewUC.ListForUser(r.Context(), identity.ID)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	if interviews == nil {
		interviews = []*entity.Interview{}
	}
	WriteSuccess(w, r, http.StatusOK, "", interviews)
}
