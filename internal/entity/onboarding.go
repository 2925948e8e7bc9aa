package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	OnboardingPendingApproval = "pending_approval"
	OnboardingActive          = "active"
)

var ErrOnboardingNotFound = errors.New("onboarding record not found")

// OnboardingRecord is the 20-question concierge questionnaire. One record per
// user, upserted on resubmission.
type OnboardingRecord struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Role targeting
	TargetRoles        []string `json:"target_roles"`
	TargetIndustries   []string `json:"target_industries"`
	TargetCompanies    []string `json:"target_companies"`
	SeniorityLevel     string   `json:"seniority_level"`
	PreferredLocations []string `json:"preferred_locations"`
	RemotePreference   string   `json:"remote_preference"`

	// Compensation
	CurrentSalaryBand  string `json:"current_salary_band"`
	ExpectedSalaryBand string `json:"expected_salary_band"`
	EquityImportance   string `json:"equity_importance"`

	// Experience
	CurrentRole     string   `json:"current_role"`
	CurrentCompany  string   `json:"current_company"`
	YearsExperience int      `json:"years_experience"`
	KeySkills       []string `json:"key_skills"`
	LinkedInURL     string   `json:"linkedin_url"`
	ResumeSummary   string   `json:"resume_summary"`

	// Strategy
	JobSearchStatus     string `json:"job_search_status"`
	ApplicationStrategy string `json:"application_strategy"`
	NetworkingComfort   string `json:"networking_comfort"`
	InterviewConfidence string `json:"interview_confidence"`

	// Goals
	PrimaryGoal       string `json:"primary_goal"`
	Timeline          string `json:"timeline"`
	SuccessDefinition string `json:"success_definition"`

	ExecutionStatus string     `json:"execution_status"`
	ApprovedBy      string     `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	AdminNotes      string     `json:"admin_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewOnboardingRecord(userID string) *OnboardingRecord {
	now := time.Now()
	return &OnboardingRecord{
		ID:              uuid.New().String(),
		UserID:          userID,
		ExecutionStatus: OnboardingPendingApproval,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

type OnboardingRepositoryInterface interface {
	// Upsert keyed on user_id; resubmission replaces answers and resets the
	// record to pending_approval.
	Upsert(ctx context.Context, rec *OnboardingRecord) error
	FindByID(ctx context.Context, id string) (*OnboardingRecord, error)
	FindByUserID(ctx context.Context, userID string) (*OnboardingRecord, error)
	Update(ctx context.Context, rec *OnboardingRecord) error
}
