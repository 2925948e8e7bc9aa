package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ascendhq/concierge-api/internal/entity"
)

func pendingRequest() *entity.ConsultationRequest {
	req, _ := entity.NewConsultationRequest(
		"Ana Torres", "ana@example.com", "+15551234567", "Looking for a career pivot",
		[]entity.Slot{
			{Date: "2026-09-10", Time: "10:00"},
			{Date: "2026-09-11", Time: "15:00"},
		})
	return req
}

func TestConfirmPicksSlotByIndex(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)
	dispatcher := new(MockDispatcher)

	req := pendingRequest()
	repo.On("FindByID", ctx, req.ID).Return(req, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

	uc := NewGatekeeperUseCase(repo, dispatcher, "https://portal.example")
	out, err := uc.Confirm(ctx, ConfirmConsultationInput{
		ID:          req.ID,
		AdminID:     "admin-1",
		SlotIndex:   1,
		MeetingLink: "https://meet.example/abc",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.ConsultationConfirmed, out.Request.Status)
	assert.Equal(t, "2026-09-11 15:00", out.Request.ConfirmedTime)
	assert.Equal(t, "admin-1", out.Request.ConfirmedBy)
	assert.True(t, out.EmailSent)
	repo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestConfirmRejectsOutOfRangeSlotIndex(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)
	dispatcher := new(MockDispatcher)

	req := pendingRequest()
	repo.On("FindByID", ctx, req.ID).Return(req, nil)

	uc := NewGatekeeperUseCase(repo, dispatcher, "https://portal.example")
	out, err := uc.Confirm(ctx, ConfirmConsultationInput{ID: req.ID, AdminID: "admin-1", SlotIndex: 2})

	assert.Nil(t, out)
	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeValidation, dErr.Code)
	assert.Contains(t, dErr.Message, "between 0 and 1")

	// No write and no side effect on a failed guard.
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestConfirmRejectsNegativeSlotIndex(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)

	req := pendingRequest()
	repo.On("FindByID", ctx, req.ID).Return(req, nil)

	uc := NewGatekeeperUseCase(repo, new(MockDispatcher), "")
	_, err := uc.Confirm(ctx, ConfirmConsultationInput{ID: req.ID, SlotIndex: -1})

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeValidation, dErr.Code)
}

func TestRescheduleRequiresReason(t *testing.T) {
	uc := NewGatekeeperUseCase(new(MockConsultationRepository), new(MockDispatcher), "")
	_, err := uc.Reschedule(context.Background(), RescheduleConsultationInput{ID: "x", Reason: "  "})

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeValidation, dErr.Code)
}

func TestRescheduleClearsConfirmedFields(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)
	dispatcher := new(MockDispatcher)

	req := pendingRequest()
	req.Status = entity.ConsultationConfirmed
	req.ConfirmedTime = "2026-09-10 10:00"
	repo.On("FindByID", ctx, req.ID).Return(req, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

	uc := NewGatekeeperUseCase(repo, dispatcher, "https://portal.example")
	out, err := uc.Reschedule(ctx, RescheduleConsultationInput{
		ID: req.ID, AdminID: "admin-1", Reason: "coach unavailable that week",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.ConsultationRescheduled, out.Request.Status)
	assert.Empty(t, out.Request.ConfirmedTime)
	assert.Nil(t, out.Request.ConfirmedSlot)
	assert.Equal(t, "coach unavailable that week", out.Request.RescheduleReason)
}

func TestWaitlistRequiresReason(t *testing.T) {
	uc := NewGatekeeperUseCase(new(MockConsultationRepository), new(MockDispatcher), "")
	_, err := uc.Waitlist(context.Background(), WaitlistConsultationInput{ID: "x"})

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeValidation, dErr.Code)
}

func TestGatekeeperRefusesTerminalStatuses(t *testing.T) {
	ctx := context.Background()

	for _, status := range []string{entity.ConsultationRejected, entity.ConsultationRegistered} {
		repo := new(MockConsultationRepository)
		req := pendingRequest()
		req.Status = status
		repo.On("FindByID", ctx, req.ID).Return(req, nil)

		uc := NewGatekeeperUseCase(repo, new(MockDispatcher), "")
		_, err := uc.Confirm(ctx, ConfirmConsultationInput{ID: req.ID, SlotIndex: 0})

		var dErr *DomainError
		assert.ErrorAs(t, err, &dErr, "status %s", status)
		assert.Equal(t, CodeBusinessRule, dErr.Code)
	}
}

func TestConfirmReportsEmailNotSentOnDispatchFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)
	dispatcher := new(MockDispatcher)

	req := pendingRequest()
	repo.On("FindByID", ctx, req.ID).Return(req, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(assert.AnError)

	uc := NewGatekeeperUseCase(repo, dispatcher, "")
	out, err := uc.Confirm(ctx, ConfirmConsultationInput{ID: req.ID, AdminID: "admin-1", SlotIndex: 0})

	// Dispatch failure never fails the operation, it only flips the flag.
	assert.NoError(t, err)
	assert.Equal(t, entity.ConsultationConfirmed, out.Request.Status)
	assert.False(t, out.EmailSent)
}
