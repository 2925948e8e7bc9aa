package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ascendhq/concierge-api/internal/entity"
)

func TestConfirmPaymentRequiresIssuedToken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)

	req := pendingRequest()
	repo.On("FindByID", ctx, req.ID).Return(req, nil)

	uc := NewConfirmPaymentUseCase(repo, new(MockDispatcher))
	_, err := uc.Execute(ctx, req.ID, "admin-1")

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeBusinessRule, dErr.Code)
	assert.Contains(t, dErr.Message, "approve it before confirming payment")
}

func TestConfirmPaymentIsIdempotentGuarded(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)

	req := pendingRequest()
	req.RegistrationToken = "some.jwt"
	req.PaymentConfirmed = true
	repo.On("FindByID", ctx, req.ID).Return(req, nil)

	uc := NewConfirmPaymentUseCase(repo, new(MockDispatcher))
	_, err := uc.Execute(ctx, req.ID, "admin-1")

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeBusinessRule, dErr.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestConfirmPaymentFlipsStatus(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)
	dispatcher := new(MockDispatcher)

	req := pendingRequest()
	req.Status = entity.ConsultationApproved
	req.RegistrationToken = "some.jwt"
	expires := time.Now().Add(7 * 24 * time.Hour)
	req.TokenExpiresAt = &expires

	repo.On("FindByID", ctx, req.ID).Return(req, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

	uc := NewConfirmPaymentUseCase(repo, dispatcher)
	out, err := uc.Execute(ctx, req.ID, "admin-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.ConsultationPaymentOK, out.Request.Status)
	assert.True(t, out.Request.PaymentConfirmed)
	assert.NotNil(t, out.Request.PaymentConfirmedAt)
	assert.True(t, out.EmailSent)
}
