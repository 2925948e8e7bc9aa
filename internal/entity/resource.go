package entity

import (
	"context"
	"errors"
	"time"
)

const (
	TierFree    = "free"
	TierPremium = "premium" // requires an unlocked profile
)

var ErrResourceNotFound = errors.New("resource not found")

type Resource struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Tier          string    `json:"tier"`
	FileURL       string    `json:"file_url"`
	DownloadCount int       `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type ResourceRepositoryInterface interface {
	List(ctx context.Context, includePremium bool) ([]*Resource, error)
	FindByID(ctx context.Context, id string) (*Resource, error)
	IncrementDownloads(ctx context.Context, id string) error
}
