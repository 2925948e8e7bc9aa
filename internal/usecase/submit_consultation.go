package usecase

import (
	"context"
	"strings"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
)

type SubmitConsultationInput struct {
	FullName       string        `json:"full_name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Message        string        `json:"message"`
	PreferredSlots []entity.Slot `json:"preferred_slots"`
}

type SubmitConsultationOutput struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type SubmitConsultationUseCase struct {
	Consultations entity.ConsultationRepositoryInterface
	Dispatcher    queue.DispatcherInterface
}

func NewSubmitConsultationUseCase(
	consultations entity.ConsultationRepositoryInterface,
	dispatcher queue.DispatcherInterface,
) *SubmitConsultationUseCase {
	return &SubmitConsultationUseCase{
		Consultations: consultations,
		Dispatcher:    dispatcher,
	}
}

func (uc *SubmitConsultationUseCase) Execute(ctx context.Context, input SubmitConsultationInput) (*SubmitConsultationOutput, error) {
	if errs := validateSubmitConsultation(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	request, err := entity.NewConsultationRequest(
		input.FullName, input.Email, input.Phone, input.Message, input.PreferredSlots,
	)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := uc.Consultations.Create(ctx, request); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to persist consultation request: " + err.Error()}
	}

	dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Email: &queue.EmailSpec{
			To:       request.Email,
			Template: "consultation_received",
			Vars: map[string]any{
				"client_name": request.FullName,
			},
		},
	})

	return &SubmitConsultationOutput{ID: request.ID, Status: request.Status}, nil
}

func validateSubmitConsultation(input SubmitConsultationInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.FullName) == "" {
		errs = append(errs, ValidationError{"full_name", "is required"})
	} else if len(input.FullName) > 200 {
		errs = append(errs, ValidationError{"full_name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errs = append(errs, ValidationError{"phone", "must be a valid phone number"})
	}

	errs = append(errs, validateSlots(input.PreferredSlots)...)
	return errs
}
