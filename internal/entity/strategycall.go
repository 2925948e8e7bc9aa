package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	CallPendingConfirmation = "pending_confirmation"
	CallConfirmed           = "confirmed"
	CallAwaitingNewTimes    = "awaiting_new_times"
	CallCompleted           = "completed"
	CallCancelled           = "cancelled"
)

var ErrStrategyCallNotFound = errors.New("strategy call not found")

type StrategyCall struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Topic  string `json:"topic"`
	Notes  string `json:"notes,omitempty"`

	PreferredSlots []Slot `json:"preferred_slots"`

	Status        string `json:"status"`
	ConfirmedSlot *Slot  `json:"confirmed_slot,omitempty"`
	ConfirmedTime string `json:"confirmed_time,omitempty"`
	MeetingLink   string `json:"meeting_link,omitempty"`

	ConfirmedBy    string     `json:"confirmed_by,omitempty"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	NewTimesReason string     `json:"new_times_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewStrategyCall(userID, topic, notes string, slots []Slot) (*StrategyCall, error) {
	if len(slots) > MaxPreferredSlots {
		return nil, ErrTooManySlots
	}
	now := time.Now()
	return &StrategyCall{
		ID:             uuid.New().String(),
		UserID:         userID,
		Topic:          topic,
		Notes:          notes,
		PreferredSlots: slots,
		Status:         CallPendingConfirmation,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

type StrategyCallRepositoryInterface interface {
	Create(ctx context.Context, c *StrategyCall) error
	FindByID(ctx context.Context, id string) (*StrategyCall, error)
	ListByUserID(ctx context.Context, userID string) ([]*StrategyCall, error)
	Update(ctx context.Context, c *StrategyCall) error
}
