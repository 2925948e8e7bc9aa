package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`

	PasscodeHash string `json:"-"`
	IsActive     bool   `json:"is_active"`

	OnboardingCompleted      bool       `json:"onboarding_completed"`
	OnboardingCompletionDate *time.Time `json:"onboarding_completion_date,omitempty"`

	// Gates access to the Application Tracker.
	ProfileUnlocked   bool       `json:"profile_unlocked"`
	ProfileUnlockDate *time.Time `json:"profile_unlock_date,omitempty"`
	ProfileUnlockedBy string     `json:"profile_unlocked_by,omitempty"`

	PaymentConfirmed   bool       `json:"payment_confirmed"`
	PaymentConfirmedAt *time.Time `json:"payment_confirmed_at,omitempty"`

	ConsultationID string `json:"consultation_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewClient creates an active client account at token-redemption time.
// passcodeHash must already be hashed; the entity never sees a plaintext password.
func NewClient(email, fullName, passcodeHash, consultationID string) *User {
	now := time.Now()
	return &User{
		ID:             uuid.New().String(),
		Email:          email,
		FullName:       fullName,
		Role:           RoleClient,
		PasscodeHash:   passcodeHash,
		IsActive:       true,
		ConsultationID: consultationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
}
