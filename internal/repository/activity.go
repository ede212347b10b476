package repository

import (
	"context"

	"github.com/finquest/finquest/internal/domain"
)

// Activity defines the interface for the per-character activity log
type Activity interface {
	InsertActivity(ctx context.Context, entry *domain.ActivityLogEntry) error
	ListActivity(ctx context.Context, characterID string, limit int) ([]domain.ActivityLogEntry, error)
}
