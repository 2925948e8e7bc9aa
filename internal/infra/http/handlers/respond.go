package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ascendhq/concierge-api/internal/logger"
	"github.com/ascendhq/concierge-api/internal/usecase"
)

type successEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type errorEnvelope struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	Details   any    `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
}

func WriteSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(successEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{
		Success:   false,
		Error:     message,
		Code:      code,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
		Status:    status,
	})
}

// WriteUseCaseError converts the usecase error taxonomy into the envelope.
// Technical errors keep their detail server-side only.
func WriteUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *usecase.DomainError:
		WriteError(w, r, statusForCode(e.Code), e.Code, e.Message, nil)
	case *usecase.TechnicalError:
		logger.Get().Error("technical error",
			zap.String("code", e.Code),
			zap.String("path", r.URL.Path),
			zap.String("detail", e.Message))
		WriteError(w, r, http.StatusInternalServerError, e.Code, "an internal error occurred", nil)
	default:
		logger.Get().Error("unhandled error", zap.String("path", r.URL.Path), zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, usecase.CodeInternal, "an internal error occurred", nil)
	}
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeUnauthorized:
		return http.StatusUnauthorized
	case usecase.CodeForbidden:
		return http.StatusForbidden
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeAlreadyExists, usecase.CodeTokenUsed, usecase.CodeBusinessRule, usecase.CodePaymentRequired:
		return http.StatusConflict
	case usecase.CodeTokenExpired:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, r, http.StatusBadRequest, usecase.CodeValidation, "invalid JSON body", nil)
		return false
	}
	return true
}
