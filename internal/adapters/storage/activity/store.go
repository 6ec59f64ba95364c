package activity

import (
	"context"

	domain "coachdash/internal/domain/activity"
)

// Store persists activity log entries. Append-only.
type Store interface {
	Insert(ctx context.Context, value domain.Entry) error
	ListRecent(ctx context.Context, limit int) ([]domain.Entry, error)
}
