package ports

import (
	"context"

	"github.com/randomtoy/auradream/internal/domain"
)

// Journal persists analyzed dreams.
type Journal interface {
	Save(ctx context.Context, e domain.Entry) error
	Get(ctx context.Context, id string) (domain.Entry, error)
	// List returns the most recent entries first.
	List(ctx context.Context, limit int) ([]domain.Entry, error)
}
