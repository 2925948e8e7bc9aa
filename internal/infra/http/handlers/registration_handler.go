package handlers

import (
	"net/http"

	"github.com/ascendhq/concierge-api/internal/metrics"
	"github.com/ascendhq/concierge-api/internal/usecase"
)

// RegistrationHandler serves the invite link: a read-only validation for the
// registration page and the single-use redemption that creates the account.
type RegistrationHandler struct {
	RedeemUC *usecase.RedeemRegistrationUseCase
}

func NewRegistrationHandler(redeemUC *usecase.RedeemRegistrationUseCase) *RegistrationHandler {
	return &RegistrationHandler{RedeemUC: redeemUC}
}

func (h *RegistrationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		WriteError(w, r, http.StatusBadRequest, usecase.CodeValidation, "token query parameter is required", nil)
		return
	}

	output, err := h.RedeemUC.Validate(r.Context(), raw)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	WriteSuccess(w, r, http.StatusOK, "", output)
}

func (h *RegistrationHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var input usecase.RedeemRegistrationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.RedeemUC.Execute(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	metrics.RecordTokenRedemption()
	metrics.RecordDispatch(output.EmailSent)
	WriteSuccess(w, r, http.StatusCreated, "account created", output)
}
