package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ascendhq/concierge-api/internal/entity"
)

func onboardedClient() *entity.User {
	u := entity.NewClient("ana@example.com", "Ana Torres", "$2a$10$hash", "cons-1")
	u.OnboardingCompleted = true
	return u
}

func TestUnlockProfileSuccess(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	dispatcher := new(MockDispatcher)

	user := onboardedClient()
	users.On("FindByID", ctx, user.ID).Return(user, nil)
	users.On("Update", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

	uc := NewUnlockProfileUseCase(users, dispatcher)
	out, err := uc.Execute(ctx, user.ID, "admin-1")

	assert.NoError(t, err)
	assert.True(t, out.ProfileUnlocked)
	assert.True(t, out.User.ProfileUnlocked)
	assert.Equal(t, "admin-1", out.User.ProfileUnlockedBy)
	assert.NotNil(t, out.User.ProfileUnlockDate)
	assert.True(t, out.EmailSent)
}

func TestUnlockProfileRequiresCompletedOnboarding(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	dispatcher := new(MockDispatcher)

	user := onboardedClient()
	user.OnboardingCompleted = false
	users.On("FindByID", ctx, user.ID).Return(user, nil)

	uc := NewUnlockProfileUseCase(users, dispatcher)
	_, err := uc.Execute(ctx, user.ID, "admin-1")

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeBusinessRule, dErr.Code)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestUnlockProfileAlreadyUnlocked(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	user := onboardedClient()
	user.ProfileUnlocked = true
	users.On("FindByID", ctx, user.ID).Return(user, nil)

	uc := NewUnlockProfileUseCase(users, new(MockDispatcher))
	_, err := uc.Execute(ctx, user.ID, "admin-1")

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeBusinessRule, dErr.Code)
	assert.Equal(t, "profile is already unlocked", dErr.Message)
}

func TestUnlockProfileEmailFlagReflectsDispatchOutcome(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	dispatcher := new(MockDispatcher)

	user := onboardedClient()
	users.On("FindByID", ctx, user.ID).Return(user, nil)
	users.On("Update", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(assert.AnError)

	uc := NewUnlockProfileUseCase(users, dispatcher)
	out, err := uc.Execute(ctx, user.ID, "admin-1")

	// The unlock sticks even when the notification path fails.
	assert.NoError(t, err)
	assert.True(t, out.ProfileUnlocked)
	assert.False(t, out.EmailSent)
}

func TestUnlockProfileUserNotFound(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("FindByID", ctx, "ghost").Return(nil, entity.ErrUserNotFound)

	uc := NewUnlockProfileUseCase(users, new(MockDispatcher))
	_, err := uc.Execute(ctx, "ghost", "admin-1")

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeNotFound, dErr.Code)
}
