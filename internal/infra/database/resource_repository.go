package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ascendhq/concierge-api/internal/entity"
)

type ResourceRepository struct {
	DB *sql.DB
}

func NewResourceRepository(db *sql.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) List(ctx context.Context, includePremium bool) ([]*entity.Resource, error) {
	query := `
		SELECT id, title, description, tier, file_url, download_count, created_at
		FROM resources
	`
	if !includePremium {
		query += ` WHERE tier = 'free'`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Resource
	for rows.Next() {
		var res entity.Resource
		if err := rows.Scan(&res.ID, &res.Title, &res.Description, &res.Tier,
			&res.FileURL, &res.DownloadCount, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &res)
	}
	return out, rows.Err()
}

func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*entity.Resource, error) {
	var res entity.Resource
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, title, description, tier, file_url, download_count, created_at
		FROM resources WHERE id = $1
	`, id).Scan(&res.ID, &res.Title, &res.Description, &res.Tier,
		&res.FileURL, &res.DownloadCount, &res.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrResourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResourceRepository) IncrementDownloads(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE resources SET download_count = download_count + 1 WHERE id = $1`, id)
	return err
}
