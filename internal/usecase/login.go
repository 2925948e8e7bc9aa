package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ascendhq/concierge-api/internal/entity"
)

type LoginUseCase struct {
	Users  entity.UserRepositoryInterface
	Tokens TokenServiceInterface
}

func NewLoginUseCase(users entity.UserRepositoryInterface, tokens TokenServiceInterface) *LoginUseCase {
	return &LoginUseCase{Users: users, Tokens: tokens}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	SessionToken string `json:"session_token"`
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "email and password are required"}
	}

	user, err := uc.Users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			// Same answer as a bad password, no account enumeration.
			return nil, &DomainError{Code: CodeUnauthorized, Message: "invalid credentials"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load user: " + err.Error()}
	}

	if !user.IsActive {
		return nil, &DomainError{Code: CodeUnauthorized, Message: "account is disabled"}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasscodeHash), []byte(input.Password)) != nil {
		return nil, &DomainError{Code: CodeUnauthorized, Message: "invalid credentials"}
	}

	session, err := uc.Tokens.NewSessionToken(user)
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: "failed to issue session token: " + err.Error()}
	}

	return &LoginOutput{UserID: user.ID, Role: user.Role, SessionToken: session}, nil
}
