package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Notification is an additive in-app log row. Only is_read ever changes.
type Notification struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"` // client | admin

	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Priority string `json:"priority"`

	Metadata   map[string]any `json:"metadata,omitempty"`
	ActionURL  string         `json:"action_url,omitempty"`
	ActionText string         `json:"action_text,omitempty"`

	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotification(userID, userType, ntype, title, message string) *Notification {
	return &Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		UserType:  userType,
		Type:      ntype,
		Title:     title,
		Message:   message,
		Priority:  PriorityMedium,
		CreatedAt: time.Now(),
	}
}

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *Notification) error
	ListByUserID(ctx context.Context, userID string) ([]*Notification, error)
	// MarkRead reports whether a row owned by userID was updated.
	MarkRead(ctx context.Context, id, userID string) (bool, error)
}
