package handlers

import (
	"net/http"

	"github.com/ascendhq/concierge-api/internal/usecase"
)

type AuthHandler struct {
	LoginUC *usecase.LoginUseCase
}

func NewAuthHandler(loginUC *usecase.LoginUseCase) *AuthHandler {
	return &AuthHandler{LoginUC: loginUC}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.LoginUC.Execute(r.Context(), input)
	if err != nil {
		WriteUseCaseError(w, r, err)
		return
	}
	WriteSuccess(w, r, http.StatusOK, "logged in", output)
}
