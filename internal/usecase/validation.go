package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/ascendhq/concierge-api/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// joinValidationErrors folds field errors into one DomainError for the envelope.
func joinValidationErrors(errs []ValidationError) *DomainError {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return &DomainError{Code: CodeValidation, Message: strings.TrimSuffix(msg, ", ")}
}

var timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func isValidDate(dateStr string) bool {
	_, err := time.Parse("2006-01-02", dateStr)
	return err == nil
}

func isValidTime(timeStr string) bool {
	return timeRe.MatchString(timeStr)
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	return len(cleaned) >= 8 && len(cleaned) <= 15
}

// validateSlots checks a submitted candidate-slot list: at least one, at most
// entity.MaxPreferredSlots, each with a well-formed date and time.
func validateSlots(slots []entity.Slot) []ValidationError {
	var errs []ValidationError

	if len(slots) == 0 {
		errs = append(errs, ValidationError{"preferred_slots", "at least one slot is required"})
		return errs
	}
	if len(slots) > entity.MaxPreferredSlots {
		errs = append(errs, ValidationError{"preferred_slots",
			fmt.Sprintf("at most %d slots are allowed", entity.MaxPreferredSlots)})
	}
	for i, s := range slots {
		if !isValidDate(s.Date) {
			errs = append(errs, ValidationError{
				fmt.Sprintf("preferred_slots[%d].date", i), "must be a valid date (YYYY-MM-DD)"})
		}
		if !isValidTime(s.Time) {
			errs = append(errs, ValidationError{
				fmt.Sprintf("preferred_slots[%d].time", i), "must be a valid time (HH:MM)"})
		}
	}
	return errs
}
