package readinglist

import (
	"context"
	"fmt"

	"bookshelf/internal/book"
	"bookshelf/internal/catalog"
)

type Service struct {
	books book.Repository
	items Repository
}

func NewService(books book.Repository, items Repository) *Service {
	return &Service{books: books, items: items}
}

// Add puts a catalog result on one of the user's lists. The book row is
// created on first sight of the ISBN and reused afterwards. The bool reports
// whether a new membership was created.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) (Item, bool, error) {
	if in.ISBN == "" || in.ISBN == catalog.SentinelISBN {
		return Item{}, false, ErrInvalidISBN
	}
	if !in.Status.Valid() {
		return Item{}, false, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}

	b, _, err := s.books.GetOrCreate(ctx, book.Book{
		Title:        in.Title,
		Author:       in.Author,
		ISBN:         in.ISBN,
		ThumbnailURL: in.ThumbnailURL,
	})
	if err != nil {
		return Item{}, false, fmt.Errorf("get or create book: %w", err)
	}

	item, created, err := s.items.GetOrCreate(ctx, userID, b.ID, in.Status)
	if err != nil {
		return Item{}, false, fmt.Errorf("get or create membership: %w", err)
	}
	item.Book = &b
	return item, created, nil
}

func (s *Service) List(ctx context.Context, userID string, status Status, sort Sort) ([]Item, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	items, err := s.items.ListByStatus(ctx, userID, status, sort)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, userID string, id int64) (Item, error) {
	return s.items.GetByID(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	return s.items.Delete(ctx, userID, id)
}

// StatusIndex returns the ownership index of userID. Anonymous callers get an
// empty index without touching the store.
func (s *Service) StatusIndex(ctx context.Context, userID string) (Index, error) {
	if userID == "" {
		return Index{}, nil
	}
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildIndex(items), nil
}
