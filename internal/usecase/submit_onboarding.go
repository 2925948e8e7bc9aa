package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
)

type SubmitOnboardingInput struct {
	UserID string `json:"-"`

	TargetRoles        []string `json:"target_roles"`
	TargetIndustries   []string `json:"target_industries"`
	TargetCompanies    []string `json:"target_companies"`
	SeniorityLevel     string   `json:"seniority_level"`
	PreferredLocations []string `json:"preferred_locations"`
	RemotePreference   string   `json:"remote_preference"`

	CurrentSalaryBand  string `json:"current_salary_band"`
	ExpectedSalaryBand string `json:"expected_salary_band"`
	EquityImportance   string `json:"equity_importance"`

	CurrentRole     string   `json:"current_role"`
	CurrentCompany  string   `json:"current_company"`
	YearsExperience int      `json:"years_experience"`
	KeySkills       []string `json:"key_skills"`
	LinkedInURL     string   `json:"linkedin_url"`
	ResumeSummary   string   `json:"resume_summary"`

	JobSearchStatus     string `json:"job_search_status"`
	ApplicationStrategy string `json:"application_strategy"`
	NetworkingComfort   string `json:"networking_comfort"`
	InterviewConfidence string `json:"interview_confidence"`

	PrimaryGoal       string `json:"primary_goal"`
	Timeline          string `json:"timeline"`
	SuccessDefinition string `json:"success_definition"`
}

type SubmitOnboardingOutput struct {
	Record *entity.OnboardingRecord `json:"record"`
}

// SubmitOnboardingUseCase stores the questionnaire (one record per user,
// upserted) and marks the account as onboarding-complete, pending admin
// approval.
type SubmitOnboardingUseCase struct {
	Onboarding entity.OnboardingRepositoryInterface
	Users      entity.UserRepositoryInterface
	Dispatcher queue.DispatcherInterface
}

func NewSubmitOnboardingUseCase(
	onboarding entity.OnboardingRepositoryInterface,
	users entity.UserRepositoryInterface,
	dispatcher queue.DispatcherInterface,
) *SubmitOnboardingUseCase {
	return &SubmitOnboardingUseCase{Onboarding: onboarding, Users: users, Dispatcher: dispatcher}
}

func (uc *SubmitOnboardingUseCase) Execute(ctx context.Context, input SubmitOnboardingInput) (*SubmitOnboardingOutput, error) {
	if errs := validateSubmitOnboarding(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	user, err := uc.Users.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "user not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load user: " + err.Error()}
	}

	rec := entity.NewOnboardingRecord(user.ID)
	rec.TargetRoles = input.TargetRoles
	rec.TargetIndustries = input.TargetIndustries
	rec.TargetCompanies = input.TargetCompanies
	rec.SeniorityLevel = input.SeniorityLevel
	rec.PreferredLocations = input.PreferredLocations
	rec.RemotePreference = input.RemotePreference
	rec.CurrentSalaryBand = input.CurrentSalaryBand
	rec.ExpectedSalaryBand = input.ExpectedSalaryBand
	rec.EquityImportance = input.EquityImportance
	rec.CurrentRole = input.CurrentRole
	rec.CurrentCompany = input.CurrentCompany
	rec.YearsExperience = input.YearsExperience
	rec.KeySkills = input.KeySkills
	rec.LinkedInURL = input.LinkedInURL
	rec.ResumeSummary = input.ResumeSummary
	rec.JobSearchStatus = input.JobSearchStatus
	rec.ApplicationStrategy = input.ApplicationStrategy
	rec.NetworkingComfort = input.NetworkingComfort
	rec.InterviewConfidence = input.InterviewConfidence
	rec.PrimaryGoal = input.PrimaryGoal
	rec.Timeline = input.Timeline
	rec.SuccessDefinition = input.SuccessDefinition

	if err := uc.Onboarding.Upsert(ctx, rec); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to save onboarding record: " + err.Error()}
	}

	if !user.OnboardingCompleted {
		now := time.Now()
		user.OnboardingCompleted = true
		user.OnboardingCompletionDate = &now
		user.UpdatedAt = now
		if err := uc.Users.Update(ctx, user); err != nil {
			return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to update user: " + err.Error()}
		}
	}

	dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Notification: &queue.NotificationSpec{
			UserID:   user.ID,
			UserType: entity.RoleClient,
			Type:     "onboarding_submitted",
			Title:    "Questionnaire received",
			Message:  "Your onboarding questionnaire is in review with your coach.",
			Category: "onboarding",
			Priority: entity.PriorityMedium,
		},
	})

	return &SubmitOnboardingOutput{Record: rec}, nil
}

func validateSubmitOnboarding(input SubmitOnboardingInput) []ValidationError {
	var errs []ValidationError
	if len(input.TargetRoles) == 0 {
		errs = append(errs, ValidationError{"target_roles", "at least one target role is required"})
	}
	if input.PrimaryGoal == "" {
		errs = append(errs, ValidationError{"primary_goal", "is required"})
	}
	if input.Timeline == "" {
		errs = append(errs, ValidationError{"timeline", "is required"})
	}
	if input.YearsExperience < 0 {
		errs = append(errs, ValidationError{"years_experience", "must not be negative"})
	}
	return errs
}
