package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
)

// ApproveConsultationUseCase moves a request into the registration pipeline:
// approve mints the single-use registration token, reject is terminal.
type ApproveConsultationUseCase struct {
	Consultations entity.ConsultationRepositoryInterface
	Tokens        TokenServiceInterface
	Dispatcher    queue.DispatcherInterface
	PortalURL     string
}

func NewApproveConsultationUseCase(
	consultations entity.ConsultationRepositoryInterface,
	tokens TokenServiceInterface,
	dispatcher queue.DispatcherInterface,
	portalURL string,
) *ApproveConsultationUseCase {
	return &ApproveConsultationUseCase{
		Consultations: consultations,
		Tokens:        tokens,
		Dispatcher:    dispatcher,
		PortalURL:     portalURL,
	}
}

type ApproveConsultationOutput struct {
	Request        *entity.ConsultationRequest `json:"request"`
	TokenExpiresAt time.Time                   `json:"token_expires_at"`
	EmailSent      bool                        `json:"email_sent"`
}

func (uc *ApproveConsultationUseCase) Approve(ctx context.Context, id, adminID string) (*ApproveConsultationOutput, error) {
	request, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	signed, expiresAt, err := uc.Tokens.NewRegistrationToken(request.ID, request.Email)
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: "failed to issue registration token: " + err.Error()}
	}

	now := time.Now()
	request.Status = entity.ConsultationApproved
	request.PipelineStatus = entity.PipelineApproved
	request.ApprovedBy = adminID
	request.ApprovedAt = &now
	// A fresh token always supersedes any previous one; the stored-token match
	// during redemption makes stale-but-valid-signature tokens worthless.
	request.RegistrationToken = signed
	request.TokenExpiresAt = &expiresAt
	request.TokenUsed = false
	request.UpdatedAt = now

	if err := uc.Consultations.Update(ctx, request); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to approve consultation: " + err.Error()}
	}

	sent := dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Email: &queue.EmailSpec{
			To:       request.Email,
			Template: "registration_invite",
			Vars: map[string]any{
				"client_name":       request.FullName,
				"registration_link": uc.PortalURL + "/register?token=" + signed,
				"expires_at":        expiresAt.Format("January 2, 2006"),
			},
		},
	})

	return &ApproveConsultationOutput{Request: request, TokenExpiresAt: expiresAt, EmailSent: sent}, nil
}

type RejectConsultationInput struct {
	ID      string
	AdminID string
	Reason  string `json:"reason,omitempty"`
}

func (uc *ApproveConsultationUseCase) Reject(ctx context.Context, input RejectConsultationInput) (*GatekeeperOutput, error) {
	request, err := uc.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = entity.ConsultationRejected
	request.PipelineStatus = entity.PipelineRejected
	request.RejectionReason = input.Reason
	request.RejectedBy = input.AdminID
	request.RejectedAt = &now
	request.UpdatedAt = now

	if err := uc.Consultations.Update(ctx, request); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to reject consultation: " + err.Error()}
	}

	sent := dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Email: &queue.EmailSpec{
			To:       request.Email,
			Template: "consultation_rejected",
			Vars: map[string]any{
				"client_name": request.FullName,
				"reason":      input.Reason,
			},
		},
	})

	return &GatekeeperOutput{Request: request, EmailSent: sent}, nil
}

func (uc *ApproveConsultationUseCase) load(ctx context.Context, id string) (*entity.ConsultationRequest, error) {
	request, err := uc.Consultations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrConsultationNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "consultation request not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load consultation: " + err.Error()}
	}
	switch request.Status {
	case entity.ConsultationRejected, entity.ConsultationRegistered:
		return nil, &DomainError{
			Code:    CodeBusinessRule,
			Message: "request is in terminal status " + request.Status + " and cannot be changed",
		}
	}
	return request, nil
}
