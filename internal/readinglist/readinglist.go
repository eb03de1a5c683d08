package readinglist

import (
	"errors"
	"fmt"
	"time"

	"bookshelf/internal/book"
)

var (
	ErrNotFound      = errors.New("reading list item not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidISBN   = errors.New("invalid isbn")
)

// Status is the list a book sits on for one user.
type Status string

const (
	StatusRead     Status = "read"
	StatusReading  Status = "reading"
	StatusWishlist Status = "wishlist"
)

func (s Status) Valid() bool {
	switch s {
	case StatusRead, StatusReading, StatusWishlist:
		return true
	default:
		return false
	}
}

func ValidateStatus(status string) (Status, error) {
	s := Status(status)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s, nil
}

// Sort orders a single list.
type Sort string

const (
	SortAddedDate Sort = "added_date"
	SortTitle     Sort = "title"
	SortAuthor    Sort = "author"
)

// ParseSort maps the sort query parameter. Unknown values sort newest first.
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortTitle:
		return SortTitle
	case SortAuthor:
		return SortAuthor
	default:
		return SortAddedDate
	}
}

// Item is one membership of a book in a user's list. The triple
// (UserID, BookID, Status) is unique, so a book may sit on several lists.
type Item struct {
	ID        int64      `json:"id"`
	UserID    string     `json:"user_id"`
	BookID    int64      `json:"book_id"`
	Status    Status     `json:"status"`
	AddedDate time.Time  `json:"added_date"`
	Book      *book.Book `json:"book,omitempty"`
}

// AddInput is a catalog result the user wants on a list.
type AddInput struct {
	ISBN         string
	Title        string
	Author       string
	ThumbnailURL *string
	Status       Status
}
