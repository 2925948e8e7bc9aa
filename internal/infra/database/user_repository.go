package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/ascendhq/concierge-api/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `
	id, email, full_name, role, passcode_hash, is_active,
	onboarding_completed, onboarding_completion_date,
	profile_unlocked, profile_unlock_date, profile_unlocked_by,
	payment_confirmed, payment_confirmed_at,
	consultation_id, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users
			(id, email, full_name, role, passcode_hash, is_active,
			 payment_confirmed, payment_confirmed_at, consultation_id,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		u.ID, u.Email, u.FullName, u.Role, u.PasscodeHash, u.IsActive,
		u.PaymentConfirmed, u.PaymentConfirmedAt, nullString(u.ConsultationID),
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET
			email = $2, full_name = $3, role = $4, passcode_hash = $5, is_active = $6,
			onboarding_completed = $7, onboarding_completion_date = $8,
			profile_unlocked = $9, profile_unlock_date = $10, profile_unlocked_by = $11,
			payment_confirmed = $12, payment_confirmed_at = $13,
			updated_at = $14
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query,
		u.ID, u.Email, u.FullName, u.Role, u.PasscodeHash, u.IsActive,
		u.OnboardingCompleted, u.OnboardingCompletionDate,
		u.ProfileUnlocked, u.ProfileUnlockDate, nullString(u.ProfileUnlockedBy),
		u.PaymentConfirmed, u.PaymentConfirmedAt,
		u.UpdatedAt,
	)
	return err
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	var unlockedBy, consultationID sql.NullString
	var onboardingDate, unlockDate, paymentAt sql.NullTime

	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.PasscodeHash, &u.IsActive,
		&u.OnboardingCompleted, &onboardingDate,
		&u.ProfileUnlocked, &unlockDate, &unlockedBy,
		&u.PaymentConfirmed, &paymentAt,
		&consultationID, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u.OnboardingCompletionDate = timePtr(onboardingDate)
	u.ProfileUnlockDate = timePtr(unlockDate)
	u.ProfileUnlockedBy = unlockedBy.String
	u.PaymentConfirmedAt = timePtr(paymentAt)
	u.ConsultationID = consultationID.String
	return &u, nil
}
