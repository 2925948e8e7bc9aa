package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/ascendhq/concierge-api/internal/entity"
)

type OnboardingRepository struct {
	DB *sql.DB
}

func NewOnboardingRepository(db *sql.DB) *OnboardingRepository {
	return &OnboardingRepository{DB: db}
}

const onboardingColumns = `
	id, user_id,
	target_roles, target_industries, target_companies, seniority_level,
	preferred_locations, remote_preference,
	current_salary_band, expected_salary_band, equity_importance,
	current_role, current_company, years_experience, key_skills,
	linkedin_url, resume_summary,
	job_search_status, application_strategy, networking_comfort, interview_confidence,
	primary_goal, timeline, success_definition,
	execution_status, approved_by, approved_at, admin_notes,
	created_at, updated_at`

// Upsert keyed on user_id: a resubmission replaces the answers and resets the
// record to pending_approval with fresh approval audit fields.
func (r *OnboardingRepository) Upsert(ctx context.Context, rec *entity.OnboardingRecord) error {
	query := `
		INSERT INTO onboarding_records
			(id, user_id,
			 target_roles, target_industries, target_companies, seniority_level,
			 preferred_locations, remote_preference,
			 current_salary_band, expected_salary_band, equity_importance,
			 current_role, current_company, years_experience, key_skills,
			 linkedin_url, resume_summary,
			 job_search_status, application_strategy, networking_comfort, interview_confidence,
			 primary_goal, timeline, success_definition,
			 execution_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		ON CONFLICT (user_id)
		DO UPDATE SET
			target_roles = EXCLUDED.target_roles,
			target_industries = EXCLUDED.target_industries,
			target_companies = EXCLUDED.target_companies,
			seniority_level = EXCLUDED.seniority_level,
			preferred_locations = EXCLUDED.preferred_locations,
			remote_preference = EXCLUDED.remote_preference,
			current_salary_band = EXCLUDED.current_salary_band,
			expected_salary_band = EXCLUDED.expected_salary_band,
			equity_importance = EXCLUDED.equity_importance,
			current_role = EXCLUDED.current_role,
			current_company = EXCLUDED.current_company,
			years_experience = EXCLUDED.years_experience,
			key_skills = EXCLUDED.key_skills,
			linkedin_url = EXCLUDED.linkedin_url,
			resume_summary = EXCLUDED.resume_summary,
			job_search_status = EXCLUDED.job_search_status,
			application_strategy = EXCLUDED.application_strategy,
			networking_comfort = EXCLUDED.networking_comfort,
			interview_confidence = EXCLUDED.interview_confidence,
			primary_goal = EXCLUDED.primary_goal,
			timeline = EXCLUDED.timeline,
			success_definition = EXCLUDED.success_definition,
			execution_status = EXCLUDED.execution_status,
			approved_by = NULL,
			approved_at = NULL,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, query,
		rec.ID, rec.UserID,
		pq.Array(rec.TargetRoles), pq.Array(rec.TargetIndustries), pq.Array(rec.TargetCompanies),
		rec.SeniorityLevel, pq.Array(rec.PreferredLocations), rec.RemotePreference,
		rec.CurrentSalaryBand, rec.ExpectedSalaryBand, rec.EquityImportance,
		rec.CurrentRole, rec.CurrentCompany, rec.YearsExperience, pq.Array(rec.KeySkills),
		rec.LinkedInURL, rec.ResumeSummary,
		rec.JobSearchStatus, rec.ApplicationStrategy, rec.NetworkingComfort, rec.InterviewConfidence,
		rec.PrimaryGoal, rec.Timeline, rec.SuccessDefinition,
		rec.ExecutionStatus, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *OnboardingRepository) FindByID(ctx context.Context, id string) (*entity.OnboardingRecord, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+onboardingColumns+` FROM onboarding_records WHERE id = $1`, id)
	return scanOnboarding(row)
}

func (r *OnboardingRepository) FindByUserID(ctx context.Context, userID string) (*entity.OnboardingRecord, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+onboardingColumns+` FROM onboarding_records WHERE user_id = $1`, userID)
	return scanOnboarding(row)
}

func (r *OnboardingRepository) Update(ctx context.Context, rec *entity.OnboardingRecord) error {
	query := `
		UPDATE onboarding_records SET
			execution_status = $2, approved_by = $3, approved_at = $4,
			admin_notes = $5, updated_at = $6
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID, rec.ExecutionStatus, nullString(rec.ApprovedBy), rec.ApprovedAt,
		nullString(rec.AdminNotes), rec.UpdatedAt,
	)
	return err
}

func scanOnboarding(row rowScanner) (*entity.OnboardingRecord, error) {
	var rec entity.OnboardingRecord
	var approvedBy, adminNotes sql.NullString
	var approvedAt sql.NullTime

	err := row.Scan(
		&rec.ID, &rec.UserID,
		pq.Array(&rec.TargetRoles), pq.Array(&rec.TargetIndustries), pq.Array(&rec.TargetCompanies),
		&rec.SeniorityLevel, pq.Array(&rec.PreferredLocations), &rec.RemotePreference,
		&rec.CurrentSalaryBand, &rec.ExpectedSalaryBand, &rec.EquityImportance,
		&rec.CurrentRole, &rec.CurrentCompany, &rec.YearsExperience, pq.Array(&rec.KeySkills),
		&rec.LinkedInURL, &rec.ResumeSummary,
		&rec.JobSearchStatus, &rec.ApplicationStrategy, &rec.NetworkingComfort, &rec.InterviewConfidence,
		&rec.PrimaryGoal, &rec.Timeline, &rec.SuccessDefinition,
		&rec.ExecutionStatus, &approvedBy, &approvedAt, &adminNotes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrOnboardingNotFound
	}
	if err != nil {
		return nil, err
	}

	rec.ApprovedBy = approvedBy.String
	rec.ApprovedAt = timePtr(approvedAt)
	rec.AdminNotes = adminNotes.String
	return &rec, nil
}
