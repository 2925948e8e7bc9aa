package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
)

// RedeemRegistrationUseCase is the single-use, time-boxed, payment-gated
// credential exchange: a valid token plus a chosen password becomes an active
// client account and a session.
type RedeemRegistrationUseCase struct {
	Consultations entity.ConsultationRepositoryInterface
	Users         entity.UserRepositoryInterface
	Tokens        TokenServiceInterface
	Dispatcher    queue.DispatcherInterface
}

func NewRedeemRegistrationUseCase(
	consultations entity.ConsultationRepositoryInterface,
	users entity.UserRepositoryInterface,
	tokens TokenServiceInterface,
	dispatcher queue.DispatcherInterface,
) *RedeemRegistrationUseCase {
	return &RedeemRegistrationUseCase{
		Consultations: consultations,
		Users:         users,
		Tokens:        tokens,
		Dispatcher:    dispatcher,
	}
}

type RedeemRegistrationInput struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type RedeemRegistrationOutput struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	SessionToken string `json:"session_token"`
	EmailSent    bool   `json:"email_sent"`
}

type ValidateRegistrationOutput struct {
	Valid    bool   `json:"valid"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// Validate runs the read-only half of the guard chain, for the registration
// page to check a link before asking for a password.
func (uc *RedeemRegistrationUseCase) Validate(ctx context.Context, rawToken string) (*ValidateRegistrationOutput, error) {
	request, err := uc.runReadGuards(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	return &ValidateRegistrationOutput{Valid: true, Email: request.Email, FullName: request.FullName}, nil
}

func (uc *RedeemRegistrationUseCase) Execute(ctx context.Context, input RedeemRegistrationInput) (*RedeemRegistrationOutput, error) {
	if len(input.Password) < 8 {
		return nil, &DomainError{Code: CodeValidation, Message: "password must be at least 8 characters"}
	}

	request, err := uc.runReadGuards(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	// Single-use guard, done as a conditional write so two racing redemptions
	// cannot both pass a read check before either commits.
	won, err := uc.Consultations.MarkTokenUsed(ctx, request.ID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to consume registration token: " + err.Error()}
	}
	if !won {
		return nil, &DomainError{Code: CodeTokenUsed, Message: "registration token has already been used"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: "failed to hash passcode: " + err.Error()}
	}

	user := entity.NewClient(request.Email, request.FullName, string(hash), request.ID)
	user.PaymentConfirmed = request.PaymentConfirmed
	user.PaymentConfirmedAt = request.PaymentConfirmedAt

	if err := uc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Code: CodeAlreadyExists, Message: "an account already exists for this email"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to create account: " + err.Error()}
	}

	request.Status = entity.ConsultationRegistered
	request.PipelineStatus = entity.PipelineClient
	request.UpdatedAt = time.Now()
	if err := uc.Consultations.Update(ctx, request); err != nil {
		// Account exists and the token is burned; the pipeline row catches up
		// on the next admin touch.
		logWarn("registration pipeline update failed", err)
	}

	session, err := uc.Tokens.NewSessionToken(user)
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: "failed to issue session token: " + err.Error()}
	}

	sent := dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Email: &queue.EmailSpec{
			To:       user.Email,
			Template: "welcome_client",
			Vars: map[string]any{
				"client_name": user.FullName,
			},
		},
		Notification: &queue.NotificationSpec{
			UserID:   user.ID,
			UserType: entity.RoleClient,
			Type:     "account_activated",
			Title:    "Welcome aboard",
			Message:  "Your account is active. Start with the onboarding questionnaire.",
			Category: "account",
			Priority: entity.PriorityHigh,
		},
	})

	return &RedeemRegistrationOutput{
		UserID:       user.ID,
		Email:        user.Email,
		SessionToken: session,
		EmailSent:    sent,
	}, nil
}

// runReadGuards applies the fail-fast chain in its fixed order: signature →
// claim type → stored-token match → unused → payment confirmed → not expired.
func (uc *RedeemRegistrationUseCase) runReadGuards(ctx context.Context, rawToken string) (*entity.ConsultationRequest, error) {
	claims, err := uc.Tokens.ParseRegistrationToken(rawToken)
	if err != nil {
		return nil, &DomainError{Code: CodeUnauthorized, Message: "registration token is invalid"}
	}

	request, err := uc.Consultations.FindByID(ctx, claims.ConsultationID)
	if err != nil {
		if errors.Is(err, entity.ErrConsultationNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "consultation request not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load consultation: " + err.Error()}
	}

	// A re-approval replaces the stored token; older tokens keep a valid
	// signature but stop matching and die here.
	if request.RegistrationToken == "" || request.RegistrationToken != rawToken {
		return nil, &DomainError{Code: CodeUnauthorized, Message: "registration token does not match the one on file"}
	}

	if request.TokenUsed {
		return nil, &DomainError{Code: CodeTokenUsed, Message: "registration token has already been used"}
	}

	if !request.PaymentConfirmed {
		return nil, &DomainError{Code: CodePaymentRequired, Message: "payment has not been confirmed for this registration"}
	}

	if request.TokenExpiresAt == nil || time.Now().After(*request.TokenExpiresAt) {
		return nil, &DomainError{Code: CodeTokenExpired, Message: "registration token has expired"}
	}

	return request, nil
}
