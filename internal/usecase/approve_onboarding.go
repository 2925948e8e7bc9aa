package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
)

// ApproveOnboardingUseCase flips an onboarding record to active and, in the
// same admin action, unlocks the owning user's Application Tracker. The two
// writes are separate statements, not one transaction; a failed second write
// is logged for manual follow-up rather than rolled back.
type ApproveOnboardingUseCase struct {
	Onboarding entity.OnboardingRepositoryInterface
	Users      entity.UserRepositoryInterface
	Dispatcher queue.DispatcherInterface
}

func NewApproveOnboardingUseCase(
	onboarding entity.OnboardingRepositoryInterface,
	users entity.UserRepositoryInterface,
	dispatcher queue.DispatcherInterface,
) *ApproveOnboardingUseCase {
	return &ApproveOnboardingUseCase{Onboarding: onboarding, Users: users, Dispatcher: dispatcher}
}

type ApproveOnboardingInput struct {
	RecordID string
	AdminID  string
	Notes    string `json:"notes,omitempty"`
}

type ApproveOnboardingOutput struct {
	Record          *entity.OnboardingRecord `json:"record"`
	ProfileUnlocked bool                     `json:"profile_unlocked"`
	EmailSent       bool                     `json:"email_sent"`
}

func (uc *ApproveOnboardingUseCase) Execute(ctx context.Context, input ApproveOnboardingInput) (*ApproveOnboardingOutput, error) {
	rec, err := uc.Onboarding.FindByID(ctx, input.RecordID)
	if err != nil {
		if errors.Is(err, entity.ErrOnboardingNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "onboarding record not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load onboarding record: " + err.Error()}
	}

	if rec.ExecutionStatus != entity.OnboardingPendingApproval {
		return nil, &DomainError{
			Code:    CodeBusinessRule,
			Message: "onboarding record is not pending approval (current status: " + rec.ExecutionStatus + ")",
		}
	}

	now := time.Now()
	rec.ExecutionStatus = entity.OnboardingActive
	rec.ApprovedBy = input.AdminID
	rec.ApprovedAt = &now
	if input.Notes != "" {
		rec.AdminNotes = input.Notes
	}
	rec.UpdatedAt = now

	if err := uc.Onboarding.Update(ctx, rec); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to approve onboarding record: " + err.Error()}
	}

	// Cascading unlock on the owner. Second write, best effort.
	unlocked := false
	user, err := uc.Users.FindByID(ctx, rec.UserID)
	if err != nil {
		logWarn("onboarding approved but owner lookup failed", err)
	} else if !user.ProfileUnlocked {
		user.ProfileUnlocked = true
		user.ProfileUnlockDate = &now
		user.ProfileUnlockedBy = input.AdminID
		user.UpdatedAt = now
		if err := uc.Users.Update(ctx, user); err != nil {
			logWarn("onboarding approved but profile unlock write failed", err)
		} else {
			unlocked = true
		}
	} else {
		unlocked = true
	}

	sent := false
	if user != nil {
		sent = dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
			Email: &queue.EmailSpec{
				To:       user.Email,
				Template: "profile_unlocked_tracker_active",
				Vars: map[string]any{
					"client_name": user.FullName,
				},
			},
			Notification: &queue.NotificationSpec{
				UserID:   user.ID,
				UserType: entity.RoleClient,
				Type:     "profile_unlocked_by_admin",
				Title:    "Application Tracker unlocked",
				Message:  "Your onboarding was approved and your Application Tracker is now active.",
				Category: "onboarding",
				Priority: entity.PriorityHigh,
			},
		})
	}

	return &ApproveOnboardingOutput{Record: rec, ProfileUnlocked: unlocked, EmailSent: sent}, nil
}
