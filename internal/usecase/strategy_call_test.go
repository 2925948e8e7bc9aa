package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ascendhq/concierge-api/internal/entity"
)

func pendingCall() *entity.StrategyCall {
	call, _ := entity.NewStrategyCall("user-1", "Negotiation prep", "",
		[]entity.Slot{
			{Date: "2026-09-20", Time: "09:00"},
			{Date: "2026-09-21", Time: "16:00"},
		})
	return call
}

func TestRequestStrategyCallValidation(t *testing.T) {
	uc := NewStrategyCallUseCase(new(MockStrategyCallRepository), new(MockUserRepository), new(MockDispatcher))

	_, err := uc.Request(context.Background(), RequestStrategyCallInput{
		UserID: "user-1", Topic: "  ",
		PreferredSlots: []entity.Slot{{Date: "2026-09-20", Time: "09:00"}},
	})

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeValidation, dErr.Code)
	assert.Contains(t, dErr.Message, "topic")
}

func TestConfirmStrategyCallSharesSlotNegotiation(t *testing.T) {
	ctx := context.Background()
	calls := new(MockStrategyCallRepository)
	users := new(MockUserRepository)
	dispatcher := new(MockDispatcher)

	call := pendingCall()
	owner := onboardedClient()
	call.UserID = owner.ID

	calls.On("FindByID", ctx, call.ID).Return(call, nil)
	calls.On("Update", ctx, mock.Anything).Return(nil)
	users.On("FindByID", ctx, owner.ID).Return(owner, nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

	uc := NewStrategyCallUseCase(calls, users, dispatcher)
	out, err := uc.Confirm(ctx, ConfirmStrategyCallInput{ID: call.ID, AdminID: "admin-1", SlotIndex: 0})

	assert.NoError(t, err)
	assert.Equal(t, entity.CallConfirmed, out.Call.Status)
	assert.Equal(t, "2026-09-20 09:00", out.Call.ConfirmedTime)
	assert.True(t, out.EmailSent)
}

func TestConfirmStrategyCallRejectsBadSlotIndex(t *testing.T) {
	ctx := context.Background()
	calls := new(MockStrategyCallRepository)

	call := pendingCall()
	calls.On("FindByID", ctx, call.ID).Return(call, nil)

	uc := NewStrategyCallUseCase(calls, new(MockUserRepository), new(MockDispatcher))
	_, err := uc.Confirm(ctx, ConfirmStrategyCallInput{ID: call.ID, SlotIndex: 5})

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeValidation, dErr.Code)
	calls.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestConfirmStrategyCallRequiresPendingStatus(t *testing.T) {
	ctx := context.Background()
	calls := new(MockStrategyCallRepository)

	call := pendingCall()
	call.Status = entity.CallConfirmed
	calls.On("FindByID", ctx, call.ID).Return(call, nil)

	uc := NewStrategyCallUseCase(calls, new(MockUserRepository), new(MockDispatcher))
	_, err := uc.Confirm(ctx, ConfirmStrategyCallInput{ID: call.ID, SlotIndex: 0})

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeBusinessRule, dErr.Code)
}

func TestRequestNewTimesClearsSlots(t *testing.T) {
	ctx := context.Background()
	calls := new(MockStrategyCallRepository)
	users := new(MockUserRepository)
	dispatcher := new(MockDispatcher)

	call := pendingCall()
	owner := onboardedClient()
	call.UserID = owner.ID

	calls.On("FindByID", ctx, call.ID).Return(call, nil)
	calls.On("Update", ctx, mock.Anything).Return(nil)
	users.On("FindByID", ctx, owner.ID).Return(owner, nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

	uc := NewStrategyCallUseCase(calls, users, dispatcher)
	out, err := uc.RequestNewTimes(ctx, RequestNewTimesInput{ID: call.ID, AdminID: "admin-1", Reason: "conflict"})

	assert.NoError(t, err)
	assert.Equal(t, entity.CallAwaitingNewTimes, out.Call.Status)
	assert.Empty(t, out.Call.PreferredSlots)
	assert.Equal(t, "conflict", out.Call.NewTimesReason)
}

func TestCompleteRequiresConfirmedCall(t *testing.T) {
	ctx := context.Background()
	calls := new(MockStrategyCallRepository)

	call := pendingCall()
	calls.On("FindByID", ctx, call.ID).Return(call, nil)

	uc := NewStrategyCallUseCase(calls, new(MockUserRepository), new(MockDispatcher))
	_, err := uc.Complete(ctx, call.ID)

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeBusinessRule, dErr.Code)
}

func TestCancelRefusesClosedCall(t *testing.T) {
	ctx := context.Background()
	calls := new(MockStrategyCallRepository)

	call := pendingCall()
	call.Status = entity.CallCompleted
	calls.On("FindByID", ctx, call.ID).Return(call, nil)

	uc := NewStrategyCallUseCase(calls, new(MockUserRepository), new(MockDispatcher))
	_, err := uc.Cancel(ctx, call.ID)

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeBusinessRule, dErr.Code)
}
