package usecase

import (
	"fmt"

	"github.com/ascendhq/concierge-api/internal/entity"
)

// Consultations, strategy calls and interviews all negotiate meetings the same
// way: the client offers up to three candidate slots, an admin picks exactly
// one. These helpers are that shared negotiation, so the guard lives in one
// place instead of once per route.

// pickSlot validates index against the candidate list and returns the chosen
// slot. The error names the allowed range, state stays untouched on failure.
func pickSlot(slots []entity.Slot, index int) (entity.Slot, error) {
	if index < 0 || index >= len(slots) {
		return entity.Slot{}, &DomainError{
			Code: CodeValidation,
			Message: fmt.Sprintf("slot index %d is out of range: must be between 0 and %d",
				index, len(slots)-1),
		}
	}
	return slots[index], nil
}

// combineSlot folds a {date, time} pair into the single confirmed_time value.
func combineSlot(s entity.Slot) string {
	return s.Date + " " + s.Time
}
