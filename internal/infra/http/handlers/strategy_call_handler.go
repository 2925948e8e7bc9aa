package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/metrics"
	"github.com/ascendhq/concierge-api/internal/usecase"
)

type StrategyCallHandler struct {
	Calls  entity.StrategyCallRepositoryInterface
	CallUC *usecase.StrategyCallUseCase
}

func NewStrategyCallHandler(
	calls entity.StrategyCallRepositoryInterface,
	callUC *usecase.StrategyCallUseCase,
) *StrategyCallHandler {
	return &StrategyCallHandler{Calls: calls, CallUC: callUC}
}

func (h *StrategyCallHandler) Request(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var input usecase.RequestStrategyCallInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.UserID = identity.ID

	call, err := h.CallUC.Request(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("strategy_call", "request")
	WriteSuccess(w, r, http.StatusCreated, "strategy call requested", call)
}

func (h *StrategyCallHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	calls, err := h.Calls.ListByUserID(r.Context(), identity.ID)
	if err != nil {
		WriteUseCaseError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()})
		return
	}
	if calls == nil {
		calls = []*entity.StrategyCall{}
	}
	WriteSuccess(w, r, http.StatusOK, "", calls)
}

func (h *StrategyCallHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	admin, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var input usecase.ConfirmStrategyCallInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")
	input.AdminID = admin.ID

	output, err := h.CallUC.Confirm(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("strategy_call", "confirm")
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusOK, "strategy call confirmed", output)
}

func (h *StrategyCallHandler) RequestNewTimes(w http.ResponseWriter, r *http.Request) {
	admin, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var input usecase.RequestNewTimesInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")
	input.AdminID = admin.ID

	output, err := h.CallUC.RequestNewTimes(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("strategy_call", "request_new_times")
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusOK, "new times requested", output)
}

func (h *StrategyCallHandler) Complete(w http.ResponseWriter, r *http.Request) {
	call, err := h.CallUC.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("strategy_call", "complete")
	WriteSuccess(w, r, http.StatusOK, "strategy call completed", call)
}

func (h *StrategyCallHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	call, err := h.CallUC.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTransition("strategy_call", "cancel")
	WriteSuccess(w, r, http.StatusOK, "strategy call cancelled", call)
}
