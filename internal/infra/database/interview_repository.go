package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ascendhq/concierge-api/internal/entity"
)

type InterviewRepository struct {
	DB *sql.DB
}

func NewInterviewRepository(db *sql.DB) *InterviewRepository {
	return &InterviewRepository{DB: db}
}

const interviewColumns = `
	id, user_id, company, position, status,
	scheduled_date, meeting_link, feedback, admin_notes,
	created_at, updated_at`

func (r *InterviewRepository) Create(ctx context.Context, iv *entity.Interview) error {
	query := `
		INSERT INTO interviews
			(id, user_id, company, position, status,
			 scheduled_date, meeting_link, feedback, admin_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		iv.ID, iv.UserID, iv.Company, iv.Position, iv.Status,
		iv.ScheduledDate, nullString(iv.MeetingLink), nullString(iv.Feedback),
		nullString(iv.AdminNotes), iv.CreatedAt, iv.UpdatedAt,
	)
	return err
}

func (r *InterviewRepository) FindByID(ctx context.Context, id string) (*entity.Interview, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id)
	iv, err := scanInterview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrInterviewNotFound
	}
	return iv, err
}

func (r *InterviewRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Interview, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

func (r *InterviewRepository) Update(ctx context.Context, iv *entity.Interview) error {
	query := `
		UPDATE interviews SET
			company = $2, position = $3, status = $4,
			scheduled_date = $5, meeting_link = $6, feedback = $7, admin_notes = $8,
			updated_at = $9
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query,
		iv.ID, iv.Company, iv.Position, iv.Status,
		iv.ScheduledDate, nullString(iv.MeetingLink), nullString(iv.Feedback),
		nullString(iv.AdminNotes), iv.UpdatedAt,
	)
	return err
}

func (r *InterviewRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	return err
}

func scanInterview(row rowScanner) (*entity.Interview, error) {
	var iv entity.Interview
	var meetingLink, feedback, adminNotes sql.NullString
	var scheduled sql.NullTime

	err := row.Scan(
		&iv.ID, &iv.UserID, &iv.Company, &iv.Position, &iv.Status,
		&scheduled, &meetingLink, &feedback, &adminNotes,
		&iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	iv.ScheduledDate = timePtr(scheduled)
	iv.MeetingLink = meetingLink.String
	iv.Feedback = feedback.String
	iv.AdminNotes = adminNotes.String
	return &iv, nil
}
