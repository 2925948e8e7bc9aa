package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/metrics"
	"github.com/ascendhq/concierge-api/internal/usecase"
)

type OnboardingHandler struct {
	Onboarding entity.OnboardingRepositoryInterface
	SubmitUC   *usecase.SubmitOnboardingUseCase
	ApproveUC  *usecase.ApproveOnboardingUseCase
}

func NewOnboardingHandler(
	onboarding entity.OnboardingRepositoryInterface,
	submitUC *usecase.SubmitOnboardingUseCase,
	approveUC *usecase.ApproveOnboardingUseCase,
) *OnboardingHandler {
	return &OnboardingHandler{Onboarding: onboarding, SubmitUC: submitUC, ApproveUC: approveUC}
}

func (h *OnboardingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var input usecase.SubmitOnboardingInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.UserID = identity.ID

	output, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("onboarding", "submit")
	WriteSuccess(w, r, http.StatusCreated, "onboarding submitted for review", output)
}

func (h *OnboardingHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	rec, err := h.Onboarding.FindByUserID(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, entity.ErrOnboardingNotFound) {
			WriteError(w, r, http.StatusNotFound, usecase.CodeNotFound, "no onboarding record yet", nil)
			return
		}
		WriteUseCaseError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()})
		return
	}
	WriteSuccess(w, r, http.StatusOK, "", rec)
}

func (h *OnboardingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	admin, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var input usecase.ApproveOnboardingInput
	if r.ContentLength > 0 && !decodeJSON(w, r, &input) {
		return
	}
	input.RecordID = chi.URLParam(r, "id")
	input.AdminID = admin.ID

	output, err := h.ApproveUC.Execute(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("onboarding", "approve")
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusOK, "onboarding approved", output)
}
