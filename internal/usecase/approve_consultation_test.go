package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ascendhq/concierge-api/internal/entity"
)

func TestApproveMintsAndStoresToken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)
	tokens := new(MockTokenService)
	dispatcher := new(MockDispatcher)

	req := pendingRequest()
	expiresAt := time.Now().Add(7 * 24 * time.Hour)
	repo.On("FindByID", ctx, req.ID).Return(req, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	tokens.On("NewRegistrationToken", req.ID, req.Email).Return("fresh.jwt", expiresAt, nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

	uc := NewApproveConsultationUseCase(repo, tokens, dispatcher, "https://portal.example")
	out, err := uc.Approve(ctx, req.ID, "admin-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.ConsultationApproved, out.Request.Status)
	assert.Equal(t, entity.PipelineApproved, out.Request.PipelineStatus)
	assert.Equal(t, "fresh.jwt", out.Request.RegistrationToken)
	assert.False(t, out.Request.TokenUsed)
	assert.Equal(t, expiresAt, out.TokenExpiresAt)
	assert.True(t, out.EmailSent)
}

func TestReapproveSupersedesPreviousToken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)
	tokens := new(MockTokenService)
	dispatcher := new(MockDispatcher)

	req := pendingRequest()
	req.Status = entity.ConsultationApproved
	req.RegistrationToken = "stale.jwt"
	req.TokenUsed = false
	expiresAt := time.Now().Add(7 * 24 * time.Hour)

	repo.On("FindByID", ctx, req.ID).Return(req, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	tokens.On("NewRegistrationToken", req.ID, req.Email).Return("fresh.jwt", expiresAt, nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

	uc := NewApproveConsultationUseCase(repo, tokens, dispatcher, "https://portal.example")
	out, err := uc.Approve(ctx, req.ID, "admin-1")

	assert.NoError(t, err)
	assert.Equal(t, "fresh.jwt", out.Request.RegistrationToken)
}

func TestRejectIsTerminal(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)
	dispatcher := new(MockDispatcher)

	req := pendingRequest()
	repo.On("FindByID", ctx, req.ID).Return(req, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

	uc := NewApproveConsultationUseCase(repo, new(MockTokenService), dispatcher, "")
	out, err := uc.Reject(ctx, RejectConsultationInput{ID: req.ID, AdminID: "admin-1", Reason: "not a fit"})

	assert.NoError(t, err)
	assert.Equal(t, entity.ConsultationRejected, out.Request.Status)
	assert.Equal(t, entity.PipelineRejected, out.Request.PipelineStatus)
	assert.Equal(t, "not a fit", out.Request.RejectionReason)
}

func TestApproveRefusesRejectedRequest(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)

	req := pendingRequest()
	req.Status = entity.ConsultationRejected
	repo.On("FindByID", ctx, req.ID).Return(req, nil)

	uc := NewApproveConsultationUseCase(repo, new(MockTokenService), new(MockDispatcher), "")
	_, err := uc.Approve(ctx, req.ID, "admin-1")

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeBusinessRule, dErr.Code)
}
