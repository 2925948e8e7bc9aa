package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/ascendhq/concierge-api/internal/entity"
)

type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	var metadata []byte
	if n.Metadata != nil {
		var err error
		metadata, err = json.Marshal(n.Metadata)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO notifications
			(id, user_id, user_type, type, title, message, category, priority,
			 metadata, action_url, action_text, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.DB.ExecContext(ctx, query,
		n.ID, n.UserID, n.UserType, n.Type, n.Title, n.Message,
		nullString(n.Category), n.Priority,
		nullBytes(metadata), nullString(n.ActionURL), nullString(n.ActionText),
		n.IsRead, n.CreatedAt,
	)
	return err
}

func (r *NotificationRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, user_type, type, title, message, category, priority,
		       metadata, action_url, action_text, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		var category, actionURL, actionText sql.NullString
		var metadata []byte

		err := rows.Scan(
			&n.ID, &n.UserID, &n.UserType, &n.Type, &n.Title, &n.Message,
			&category, &n.Priority,
			&metadata, &actionURL, &actionText, &n.IsRead, &n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &n.Metadata); err != nil {
				return nil, err
			}
		}
		n.Category = category.String
		n.ActionURL = actionURL.String
		n.ActionText = actionText.String
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
