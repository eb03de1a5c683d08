package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	// GetOrCreate inserts b unless a book with the same ISBN exists, in which
	// case the stored row is returned untouched. The bool reports an insert.
	GetOrCreate(ctx context.Context, b Book) (Book, bool, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
}
