package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Application-tracker statuses for an interview process.
const (
	InterviewApplied   = "applied"
	InterviewScheduled = "interview"
	InterviewOffer     = "offer"
	InterviewRejected  = "rejected"
	InterviewWithdrawn = "withdrawn"
)

var ErrInterviewNotFound = errors.New("interview not found")

// Interview is one tracked application/interview process for a client,
// coordinated by an admin.
type Interview struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Company  string `json:"company"`
	Position string `json:"position"`
	Status   string `json:"status"`

	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	MeetingLink   string     `json:"meeting_link,omitempty"`
	Feedback      string     `json:"feedback,omitempty"`
	AdminNotes    string     `json:"admin_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewInterview(userID, company, position string) *Interview {
	now := time.Now()
	return &Interview{
		ID:        uuid.New().String(),
		UserID:    userID,
		Company:   company,
		Position:  position,
		Status:    InterviewApplied,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func IsValidInterviewStatus(s string) bool {
	switch s {
	case InterviewApplied, InterviewScheduled, InterviewOffer, InterviewRejected, InterviewWithdrawn:
		return true
	}
	return false
}

type InterviewRepositoryInterface interface {
	Create(ctx context.Context, iv *Interview) error
	FindByID(ctx context.Context, id string) (*Interview, error)
	ListByUserID(ctx context.Context, userID string) ([]*Interview, error)
	Update(ctx context.Context, iv *Interview) error
	Delete(ctx context.Context, id string) error
}
