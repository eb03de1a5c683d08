package main

import (
	"context"
	"fmt"

	"bookshelf/internal/catalog"
	"bookshelf/internal/readinglist"
)

var samples = []readinglist.AddInput{
	{ISBN: "9784101001548", Title: "ノルウェイの森", Author: "村上春樹", Status: readinglist.StatusRead},
	{ISBN: "9780262033848", Title: "Introduction to Algorithms", Author: "Thomas H. Cormen, Charles E. Leiserson", Status: readinglist.StatusReading},
	{ISBN: "9780134190440", Title: "The Go Programming Language", Author: "Alan A. A. Donovan, Brian W. Kernighan", Status: readinglist.StatusRead},
	{ISBN: "9780201633610", Title: "Design Patterns", Author: "Erich Gamma", Status: readinglist.StatusWishlist},
	{ISBN: "9781491950357", Title: "Building Microservices", Author: "Sam Newman", Status: readinglist.StatusReading},
}

// wishlistEntries turns catalog results into wishlist additions.
func wishlistEntries(results []catalog.Result) []readinglist.AddInput {
	out := make([]readinglist.AddInput, 0, len(results))
	for _, r := range results {
		in := readinglist.AddInput{
			ISBN:   r.ISBN,
			Title:  r.Title,
			Author: r.Author,
			Status: readinglist.StatusWishlist,
		}
		if r.ThumbnailURL != "" {
			thumb := r.ThumbnailURL
			in.ThumbnailURL = &thumb
		}
		out = append(out, in)
	}
	return out
}

// seedShelf adds every entry for userID and reports how many memberships were new.
func seedShelf(ctx context.Context, svc *readinglist.Service, userID string, entries []readinglist.AddInput) (int, error) {
	created := 0
	for _, in := range entries {
		_, isNew, err := svc.Add(ctx, userID, in)
		if err != nil {
			return created, fmt.Errorf("add %s: %w", in.ISBN, err)
		}
		if isNew {
			created++
		}
	}
	return created, nil
}
