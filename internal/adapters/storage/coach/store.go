package coach

import (
	"context"

	domain "coachdash/internal/domain/coach"
)

// Store persists Coach state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Coach, error)
	GetByEmail(ctx context.Context, email string) (domain.Coach, error)
	Save(ctx context.Context, value domain.Coach) error
	List(ctx context.Context) ([]domain.Coach, error)
	Count(ctx context.Context) (int, error)
}
