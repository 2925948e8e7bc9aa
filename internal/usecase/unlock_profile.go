package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
)

// UnlockProfileUseCase grants a client access to the Application Tracker.
// Preconditions: onboarding complete, not already unlocked. The unlock itself
// is the unit of success; the email and notification are detached jobs.
type UnlockProfileUseCase struct {
	Users      entity.UserRepositoryInterface
	Dispatcher queue.DispatcherInterface
}

func NewUnlockProfileUseCase(
	users entity.UserRepositoryInterface,
	dispatcher queue.DispatcherInterface,
) *UnlockProfileUseCase {
	return &UnlockProfileUseCase{Users: users, Dispatcher: dispatcher}
}

type UnlockProfileOutput struct {
	User            *entity.User `json:"user"`
	ProfileUnlocked bool         `json:"profile_unlocked"`
	EmailSent       bool         `json:"email_sent"`
}

func (uc *UnlockProfileUseCase) Execute(ctx context.Context, userID, adminID string) (*UnlockProfileOutput, error) {
	user, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "user not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load user: " + err.Error()}
	}

	if !user.OnboardingCompleted {
		return nil, &DomainError{
			Code:    CodeBusinessRule,
			Message: "profile cannot be unlocked before the onboarding questionnaire is completed",
		}
	}
	if user.ProfileUnlocked {
		return nil, &DomainError{Code: CodeBusinessRule, Message: "profile is already unlocked"}
	}

	now := time.Now()
	user.ProfileUnlocked = true
	user.ProfileUnlockDate = &now
	user.ProfileUnlockedBy = adminID
	user.UpdatedAt = now

	if err := uc.Users.Update(ctx, user); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to unlock profile: " + err.Error()}
	}

	sent := dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Email: &queue.EmailSpec{
			To:       user.Email,
			Template: "profile_unlocked",
			Vars: map[string]any{
				"client_name": user.FullName,
			},
		},
		Notification: &queue.NotificationSpec{
			UserID:   user.ID,
			UserType: entity.RoleClient,
			Type:     "profile_unlocked_by_admin",
			Title:    "Application Tracker unlocked",
			Message:  "Your profile is unlocked and the Application Tracker is ready to use.",
			Category: "account",
			Priority: entity.PriorityHigh,
		},
	})

	return &UnlockProfileOutput{User: user, ProfileUnlocked: true, EmailSent: sent}, nil
}
