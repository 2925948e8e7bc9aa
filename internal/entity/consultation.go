package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Slot is a candidate meeting time offered by a client.
type Slot struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

const MaxPreferredSlots = 3

// Lifecycle status of a consultation request.
const (
	ConsultationPending     = "pending"
	ConsultationUnderReview = "under_review"
	ConsultationApproved    = "approved"
	ConsultationRejected    = "rejected"
	ConsultationConfirmed   = "confirmed"
	ConsultationRescheduled = "rescheduled"
	ConsultationWaitlisted  = "waitlisted"
	ConsultationScheduled   = "scheduled"
	ConsultationPaymentOK   = "payment_verified"
	ConsultationRegistered  = "registered"
)

// Pipeline status, the sales-facing view of the same request.
const (
	PipelineLead        = "lead"
	PipelineUnderReview = "under_review"
	PipelineApproved    = "approved"
	PipelineRejected    = "rejected"
	PipelineClient      = "client"
)

var (
	ErrConsultationNotFound = errors.New("consultation request not found")
	ErrTooManySlots         = errors.New("at most 3 preferred slots are allowed")
)

type ConsultationRequest struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`

	PreferredSlots []Slot `json:"preferred_slots"`

	Status         string `json:"status"`
	AdminStatus    string `json:"admin_status"`    // gatekeeper-facing subset
	PipelineStatus string `json:"pipeline_status"`

	AdminNotes    string `json:"admin_notes,omitempty"`
	ConfirmedSlot *Slot  `json:"confirmed_slot,omitempty"`
	ConfirmedTime string `json:"confirmed_time,omitempty"`
	MeetingLink   string `json:"meeting_link,omitempty"`

	RescheduleReason string `json:"reschedule_reason,omitempty"`
	WaitlistReason   string `json:"waitlist_reason,omitempty"`
	RejectionReason  string `json:"rejection_reason,omitempty"`

	ConfirmedBy string     `json:"confirmed_by,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	ApprovedBy  string     `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedBy  string     `json:"rejected_by,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`

	RegistrationToken string     `json:"-"`
	TokenExpiresAt    *time.Time `json:"token_expires_at,omitempty"`
	TokenUsed         bool       `json:"token_used"`

	PaymentConfirmed   bool       `json:"payment_confirmed"`
	PaymentConfirmedAt *time.Time `json:"payment_confirmed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewConsultationRequest builds a pending request from a public submission.
func NewConsultationRequest(fullName, email, phone, message string, slots []Slot) (*ConsultationRequest, error) {
	if len(slots) > MaxPreferredSlots {
		return nil, ErrTooManySlots
	}
	now := time.Now()
	return &ConsultationRequest{
		ID:             uuid.New().String(),
		FullName:       fullName,
		Email:          email,
		Phone:          phone,
		Message:        message,
		PreferredSlots: slots,
		Status:         ConsultationPending,
		AdminStatus:    ConsultationPending,
		PipelineStatus: PipelineLead,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

type ConsultationRepositoryInterface interface {
	Create(ctx context.Context, c *ConsultationRequest) error
	FindByID(ctx context.Context, id string) (*ConsultationRequest, error)
	List(ctx context.Context, status string) ([]*ConsultationRequest, error)
	Update(ctx context.Context, c *ConsultationRequest) error

	// MarkTokenUsed flips token_used with a conditional write and reports
	// whether this call won the flip. Single-use guard for redemption.
	MarkTokenUsed(ctx context.Context, id string) (bool, error)
}
