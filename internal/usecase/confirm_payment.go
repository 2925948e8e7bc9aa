package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
)

// ConfirmPaymentUseCase records the out-of-band payment an admin verified.
// Redemption of the registration token is gated on this flag.
type ConfirmPaymentUseCase struct {
	Consultations entity.ConsultationRepositoryInterface
	Dispatcher    queue.DispatcherInterface
}

func NewConfirmPaymentUseCase(
	consultations entity.ConsultationRepositoryInterface,
	dispatcher queue.DispatcherInterface,
) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{Consultations: consultations, Dispatcher: dispatcher}
}

func (uc *ConfirmPaymentUseCase) Execute(ctx context.Context, id, adminID string) (*GatekeeperOutput, error) {
	request, err := uc.Consultations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrConsultationNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "consultation request not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load consultation: " + err.Error()}
	}

	if request.RegistrationToken == "" {
		return nil, &DomainError{
			Code:    CodeBusinessRule,
			Message: "request has no registration token yet: approve it before confirming payment",
		}
	}
	if request.PaymentConfirmed {
		return nil, &DomainError{Code: CodeBusinessRule, Message: "payment is already confirmed for this request"}
	}

	now := time.Now()
	request.Status = entity.ConsultationPaymentOK
	request.PaymentConfirmed = true
	request.PaymentConfirmedAt = &now
	request.UpdatedAt = now

	if err := uc.Consultations.Update(ctx, request); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to confirm payment: " + err.Error()}
	}

	sent := dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Email: &queue.EmailSpec{
			To:       request.Email,
			Template: "payment_confirmed",
			Vars: map[string]any{
				"client_name": request.FullName,
			},
		},
	})

	return &GatekeeperOutput{Request: request, EmailSent: sent}, nil
}
