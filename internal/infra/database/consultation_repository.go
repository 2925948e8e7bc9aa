package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/ascendhq/concierge-api/internal/entity"
)

type ConsultationRepository struct {
	DB *sql.DB
}

func NewConsultationRepository(db *sql.DB) *ConsultationRepository {
	return &ConsultationRepository{DB: db}
}

const consultationColumns = `
	id, full_name, email, phone, message, preferred_slots,
	status, admin_status, pipeline_status, admin_notes,
	confirmed_slot, confirmed_time, meeting_link,
	reschedule_reason, waitlist_reason, rejection_reason,
	confirmed_by, confirmed_at, approved_by, approved_at, rejected_by, rejected_at,
	registration_token, token_expires_at, token_used,
	payment_confirmed, payment_confirmed_at,
	created_at, updated_at`

func (r *ConsultationRepository) Create(ctx context.Context, c *entity.ConsultationRequest) error {
	slots, err := json.Marshal(c.PreferredSlots)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO consultation_requests
			(id, full_name, email, phone, message, preferred_slots,
			 status, admin_status, pipeline_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.DB.ExecContext(ctx, query,
		c.ID, c.FullName, c.Email, c.Phone, c.Message, slots,
		c.Status, c.AdminStatus, c.PipelineStatus, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *ConsultationRepository) FindByID(ctx context.Context, id string) (*entity.ConsultationRequest, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+consultationColumns+` FROM consultation_requests WHERE id = $1`, id)

	c, err := scanConsultation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrConsultationNotFound
	}
	return c, err
}

func (r *ConsultationRepository) List(ctx context.Context, status string) ([]*entity.ConsultationRequest, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultation_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.ConsultationRequest
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ConsultationRepository) Update(ctx context.Context, c *entity.ConsultationRequest) error {
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
		UPDATE consultation_requests SET
			full_name = $2, email = $3, phone = $4, message = $5, preferred_slots = $6,
			status = $7, admin_status = $8, pipeline_status = $9, admin_notes = $10,
			confirmed_slot = $11, confirmed_time = $12, meeting_link = $13,
			reschedule_reason = $14, waitlist_reason = $15, rejection_reason = $16,
			confirmed_by = $17, confirmed_at = $18,
			approved_by = $19, approved_at = $20,
			rejected_by = $21, rejected_at = $22,
			registration_token = $23, token_expires_at = $24, token_used = $25,
			payment_confirmed = $26, payment_confirmed_at = $27,
			updated_at = $28
		WHERE id = $1
	`
	_, err = r.DB.ExecContext(ctx, query,
		c.ID, c.FullName, c.Email, c.Phone, c.Message, slots,
		c.Status, c.AdminStatus, c.PipelineStatus, nullString(c.AdminNotes),
		nullBytes(confirmedSlot), nullString(c.ConfirmedTime), nullString(c.MeetingLink),
		nullString(c.RescheduleReason), nullString(c.WaitlistReason), nullString(c.RejectionReason),
		nullString(c.ConfirmedBy), c.ConfirmedAt,
		nullString(c.ApprovedBy), c.ApprovedAt,
		nullString(c.RejectedBy), c.RejectedAt,
		nullString(c.RegistrationToken), c.TokenExpiresAt, c.TokenUsed,
		c.PaymentConfirmed, c.PaymentConfirmedAt,
		c.UpdatedAt,
	)
	return err
}

// MarkTokenUsed is the atomic single-use guard: only the call that flips the
// flag sees an affected row.
func (r *ConsultationRepository) MarkTokenUsed(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE consultation_requests
		SET token_used = TRUE, updated_at = NOW()
		WHERE id = $1 AND token_used = FALSE
	`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConsultation(row rowScanner) (*entity.ConsultationRequest, error) {
	var c entity.ConsultationRequest
	var slots []byte
	var confirmedSlot []byte
	var adminNotes, confirmedTime, meetingLink sql.NullString
	var reschedule, waitlist, rejection sql.NullString
	var confirmedBy, approvedBy, rejectedBy, regToken sql.NullString
	var confirmedAt, approvedAt, rejectedAt, tokenExpires, paymentAt sql.NullTime

	err := row.Scan(
		&c.ID, &c.FullName, &c.Email, &c.Phone, &c.Message, &slots,
		&c.Status, &c.AdminStatus, &c.PipelineStatus, &adminNotes,
		&confirmedSlot, &confirmedTime, &meetingLink,
		&reschedule, &waitlist, &rejection,
		&confirmedBy, &confirmedAt, &approvedBy, &approvedAt, &rejectedBy, &rejectedAt,
		&regToken, &tokenExpires, &c.TokenUsed,
		&c.PaymentConfirmed, &paymentAt,
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

	c.AdminNotes = adminNotes.String
	c.ConfirmedTime = confirmedTime.String
	c.MeetingLink = meetingLink.String
	c.RescheduleReason = reschedule.String
	c.WaitlistReason = waitlist.String
	c.RejectionReason = rejection.String
	c.ConfirmedBy = confirmedBy.String
	c.ApprovedBy = approvedBy.String
	c.RejectedBy = rejectedBy.String
	c.RegistrationToken = regToken.String
	c.ConfirmedAt = timePtr(confirmedAt)
	c.ApprovedAt = timePtr(approvedAt)
	c.RejectedAt = timePtr(rejectedAt)
	c.TokenExpiresAt = timePtr(tokenExpires)
	c.PaymentConfirmedAt = timePtr(paymentAt)

	return &c, nil
}
