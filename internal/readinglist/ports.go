package readinglist

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=readinglist

// Repository persists memberships. Every lookup is scoped to the owning user.
type Repository interface {
	GetOrCreate(ctx context.Context, userID string, bookID int64, status Status) (Item, bool, error)
	ListByStatus(ctx context.Context, userID string, status Status, sort Sort) ([]Item, error)
	// ListByUser returns every membership of the user in ascending id order.
	ListByUser(ctx context.Context, userID string) ([]Item, error)
	GetByID(ctx context.Context, userID string, id int64) (Item, error)
	Delete(ctx context.Context, userID string, id int64) error
}
