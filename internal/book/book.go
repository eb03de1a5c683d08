package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrEmptyISBN is returned when a book is stored without an ISBN.
var ErrEmptyISBN = errors.New("book isbn is empty")

// Book is a catalog record shared by every shelf. Rows are written once on the
// first add of an ISBN and never refreshed afterwards.
type Book struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	ISBN          string     `json:"isbn"`
	PublishedDate *time.Time `json:"published_date"`
	ThumbnailURL  *string    `json:"thumbnail_url"`
}
