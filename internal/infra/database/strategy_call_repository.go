package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/ascendhq/concierge-api/internal/entity"
)

type StrategyCallRepository struct {
	DB *sql.DB
}

func NewStrategyCallRepository(db *sql.DB) *StrategyCallRepository {
	return &StrategyCallRepository{DB: db}
}

const strategyCallColumns = `
	id, user_id, topic, notes, preferred_slots,
	status, confirmed_slot, confirmed_time, meeting_link,
	confirmed_by, confirmed_at, new_times_reason,
	created_at, updated_at`

func (r *StrategyCallRepository) Create(ctx context.Context, c *entity.StrategyCall) error {
	slots, err := json.Marshal(c.PreferredSlots)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO strategy_calls
			(id, user_id, topic, notes, preferred_slots, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.DB.ExecContext(ctx, query,
		c.ID, c.UserID, c.Topic, nullString(c.Notes), slots, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *StrategyCallRepository) FindByID(ctx context.Context, id string) (*entity.StrategyCall, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+strategyCallColumns+` FROM strategy_calls WHERE id = $1`, id)
	c, err := scanStrategyCall(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrStrategyCallNotFound
	}
	return c, err
}

func (r *StrategyCallRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.StrategyCall, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+strategyCallColumns+` FROM strategy_calls WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.StrategyCall
	for rows.Next() {
		c, err := scanStrategyCall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *StrategyCallRepository) Update(ctx context.Context, c *entity.StrategyCall) error {
	slots, err := json.Marshal(c.PreferredSlots)
	if err != nil {
		return err
	}
	var confirmedSlot []byte
	if c.ConfirmedSlot != nil {
		confirmedSlot, err = json.Marshal(c.ConfirmedSlot)
		if err != nil {
			return err
		}
	}

	query := `
		UPDATE strategy_calls SET
			topic = $2, notes = $3, preferred_slots = $4, status = $5,
			confirmed_slot = $6, confirmed_time = $7, meeting_link = $8,
			confirmed_by = $9, confirmed_at = $10, new_times_reason = $11,
			updated_at = $12
		WHERE id = $1
	`
	_, err = r.DB.ExecContext(ctx, query,
		c.ID, c.Topic, nullString(c.Notes), slots, c.Status,
		nullBytes(confirmedSlot), nullString(c.ConfirmedTime), nullString(c.MeetingLink),
		nullString(c.ConfirmedBy), c.ConfirmedAt, nullString(c.NewTimesReason),
		c.UpdatedAt,
	)
	return err
}

func scanStrategyCall(row rowScanner) (*entity.StrategyCall, error) {
	var c entity.StrategyCall
	var slots, confirmedSlot []byte
	var notes, confirmedTime, meetingLink, confirmedBy, newTimesReason sql.NullString
	var confirmedAt sql.NullTime

	err := row.Scan(
		&c.ID, &c.UserID, &c.Topic, &notes, &slots,
		&c.Status, &confirmedSlot, &confirmedTime, &meetingLink,
		&confirmedBy, &confirmedAt, &newTimesReason,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(slots) > 0 {
		if err := json.Unmarshal(slots, &c.PreferredSlots); err != nil {
			return nil, err
		}
	}
	if len(confirmedSlot) > 0 {
		var s entity.Slot
		if err := json.Unmarshal(confirmedSlot, &s); err != nil {
			return nil, err
		}
		c.ConfirmedSlot = &s
	}

	c.Notes = notes.String
	c.ConfirmedTime = confirmedTime.String
	c.MeetingLink = meetingLink.String
	c.ConfirmedBy = confirmedBy.String
	c.NewTimesReason = newTimesReason.String
	c.ConfirmedAt = timePtr(confirmedAt)
	return &c, nil
}
