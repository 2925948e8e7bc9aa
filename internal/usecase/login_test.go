package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/ascendhq/concierge-api/internal/entity"
)

func clientWithPassword(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return entity.NewClient("ana@example.com", "Ana Torres", string(hash), "cons-1")
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	tokens := new(MockTokenService)

	user := clientWithPassword(t, "correct horse")
	users.On("FindByEmail", ctx, user.Email).Return(user, nil)
	tokens.On("NewSessionToken", user).Return("session-jwt", nil)

	uc := NewLoginUseCase(users, tokens)
	out, err := uc.Execute(ctx, LoginInput{Email: user.Email, Password: "correct horse"})

	assert.NoError(t, err)
	assert.Equal(t, user.ID, out.UserID)
	assert.Equal(t, entity.RoleClient, out.Role)
	assert.Equal(t, "session-jwt", out.SessionToken)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	user := clientWithPassword(t, "correct horse")
	users.On("FindByEmail", ctx, user.Email).Return(user, nil)

	uc := NewLoginUseCase(users, new(MockTokenService))
	_, err := uc.Execute(ctx, LoginInput{Email: user.Email, Password: "wrong"})

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeUnauthorized, dErr.Code)
}

func TestLoginUnknownEmailSameAnswerAsBadPassword(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, entity.ErrUserNotFound)

	uc := NewLoginUseCase(users, new(MockTokenService))
	_, err := uc.Execute(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever!"})

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeUnauthorized, dErr.Code)
	assert.Equal(t, "invalid credentials", dErr.Message)
}

func TestLoginDisabledAccount(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	user := clientWithPassword(t, "correct horse")
	user.IsActive = false
	users.On("FindByEmail", ctx, user.Email).Return(user, nil)

	uc := NewLoginUseCase(users, new(MockTokenService))
	_, err := uc.Execute(ctx, LoginInput{Email: user.Email, Password: "correct horse"})

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeUnauthorized, dErr.Code)
}
