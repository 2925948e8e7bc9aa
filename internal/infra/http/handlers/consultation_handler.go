package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/metrics"
	"github.com/ascendhq/concierge-api/internal/usecase"
)

// ConsultationHandler covers the public intake form and the admin gatekeeper
// actions on a request.
type ConsultationHandler struct {
	Consultations entity.ConsultationRepositoryInterface
	SubmitUC      *usecase.SubmitConsultationUseCase
	GatekeeperUC  *usecase.GatekeeperUseCase
	ApproveUC     *usecase.ApproveConsultationUseCase
	PaymentUC     *usecase.ConfirmPaymentUseCase
}

func NewConsultationHandler(
	consultations entity.ConsultationRepositoryInterface,
	submitUC *usecase.SubmitConsultationUseCase,
	gatekeeperUC *usecase.GatekeeperUseCase,
	approveUC *usecase.ApproveConsultationUseCase,
	paymentUC *usecase.ConfirmPaymentUseCase,
) *ConsultationHandler {
	return &ConsultationHandler{
		Consultations: consultations,
		SubmitUC:      submitUC,
		GatekeeperUC:  gatekeeperUC,
		ApproveUC:     approveUC,
		PaymentUC:     paymentUC,
	}
}

// Submit is the only unauthenticated write in the API.
func (h *ConsultationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitConsultationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	WriteSuccess(w, r, http.StatusCreated, "consultation request received", output)
}

func (h *ConsultationHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	requests, err := h.Consultations.List(r.Context(), status)
	if err != nil {
		WriteUseCaseError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()})
		return
	}
	if requests == nil {
		requests = []*entity.ConsultationRequest{}
	}
	WriteSuccess(w, r, http.StatusOK, "", requests)
}

func (h *ConsultationHandler) Get(w http.ResponseWriter, r *http.Request) {
	request, err := h.Consultations.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrConsultationNotFound) {
			WriteError(w, r, http.StatusNotFound, usecase.CodeNotFound, "consultation request not found", nil)
			return
		}
		WriteUseCaseError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()})
		return
	}
	WriteSuccess(w, r, http.StatusOK, "", request)
}

func (h *ConsultationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	admin, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var input usecase.ConfirmConsultationInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")
	input.AdminID = admin.ID

	output, err := h.GatekeeperUC.Confirm(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("consultation", "confirm")
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusOK, "consultation confirmed", output)
}

func (h *ConsultationHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	admin, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var input usecase.RescheduleConsultationInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")
	input.AdminID = admin.ID

	output, err := h.GatekeeperUC.Reschedule(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("consultation", "reschedule")
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusOK, "reschedule requested", output)
}

func (h *ConsultationHandler) Waitlist(w http.ResponseWriter, r *http.Request) {
	admin, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var input usecase.WaitlistConsultationInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")
	input.AdminID = admin.ID

	output, err := h.GatekeeperUC.Waitlist(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("consultation", "waitlist")
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusOK, "request waitlisted", output)
}

func (h *ConsultationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	admin, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	output, err := h.ApproveUC.Approve(r.Context(), chi.URLParam(r, "id"), admin.ID)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("consultation", "approve")
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusOK, "registration invite issued", output)
}

func (h *ConsultationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	admin, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var input usecase.RejectConsultationInput
	if r.ContentLength > 0 && !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")
	input.AdminID = admin.ID

	output, err := h.ApproveUC.Reject(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("consultation", "reject")
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusOK, "consultation rejected", output)
}

func (h *ConsultationHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	admin, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	output, err := h.PaymentUC.Execute(r.Context(), chi.URLParam(r, "id"), admin.ID)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("consultation", "confirm_payment")
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusOK, "payment confirmed", output)
}
