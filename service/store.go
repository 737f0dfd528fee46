package service

import (
	"context"

	"github.com/kadalikavya/tinylink-backend/models"
)

// Store abstracts the durable links table. The db package implements it with
// PostgreSQL; the service never caches rows on its own.
type Store interface {
	// CreateLink inserts a new row. Must fail with ErrConflict if the code
	// is already taken (the primary-key constraint is the source of truth).
	CreateLink(ctx context.Context, code, url string) error
	// ListLinks returns all rows ordered by created_at descending.
	ListLinks(ctx context.Context) ([]models.Link, error)
	// GetLinkByCode returns the row for a code, or ErrNotFound.
	GetLinkByCode(ctx context.Context, code string) (*models.Link, error)
	// DeleteLink removes the row for a code, or returns ErrNotFound if no
	// row was affected.
	DeleteLink(ctx context.Context, code string) error
	// CodeExists reports whether a code is already in use.
	CodeExists(ctx context.Context, code string) (bool, error)
	// RecordClick applies clicks = clicks + 1 and stamps last_clicked as a
	// single relative update keyed by code.
	RecordClick(ctx context.Context, code string) error
}
