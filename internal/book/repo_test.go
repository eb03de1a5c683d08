package book_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func repositories(t *testing.T) map[string]func(t *testing.T) book.Repository {
	return map[string]func(t *testing.T) book.Repository{
		"sqlite": func(t *testing.T) book.Repository {
			return book.NewSQLiteRepo(testutil.OpenSQLite(t), 5*time.Second)
		},
		"postgres": func(t *testing.T) book.Repository {
			return book.NewPostgresRepo(testutil.OpenPostgres(t), 5*time.Second)
		},
	}
}

func TestRepository_GetOrCreate(t *testing.T) {
	for name, open := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			ctx := context.Background()

			created, ok, err := repo.GetOrCreate(ctx, book.Book{
				Title:        "ノルウェイの森",
				Author:       "村上春樹",
				ISBN:         "9784062748681",
				ThumbnailURL: strPtr("http://example.com/t.jpg"),
			})
			require.NoError(t, err)
			assert.True(t, ok)
			assert.NotZero(t, created.ID)
			assert.Equal(t, "9784062748681", created.ISBN)
			require.NotNil(t, created.ThumbnailURL)
			assert.Equal(t, "http://example.com/t.jpg", *created.ThumbnailURL)
			assert.Nil(t, created.PublishedDate)

			again, ok, err := repo.GetOrCreate(ctx, book.Book{
				Title:  "Different title",
				Author: "Someone else",
				ISBN:   "9784062748681",
			})
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, created.ID, again.ID)
			assert.Equal(t, "ノルウェイの森", again.Title, "existing rows are not refreshed")
			assert.Equal(t, "村上春樹", again.Author)
		})
	}
}

func TestRepository_GetOrCreate_EmptyISBN(t *testing.T) {
	for name, open := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := open(t).GetOrCreate(context.Background(), book.Book{Title: "x"})
			assert.ErrorIs(t, err, book.ErrEmptyISBN)
		})
	}
}

func TestRepository_GetOrCreate_PublishedDate(t *testing.T) {
	for name, open := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			published := time.Date(1987, 9, 4, 0, 0, 0, 0, time.UTC)
			b, _, err := open(t).GetOrCreate(context.Background(), book.Book{
				Title: "t", Author: "a", ISBN: "4062036149", PublishedDate: &published,
			})
			require.NoError(t, err)
			require.NotNil(t, b.PublishedDate)
			assert.Equal(t, "1987-09-04", b.PublishedDate.Format("2006-01-02"))
		})
	}
}

func TestRepository_GetByISBN(t *testing.T) {
	for name, open := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			ctx := context.Background()

			_, err := repo.GetByISBN(ctx, "missing")
			assert.ErrorIs(t, err, book.ErrNotFound)

			created, _, err := repo.GetOrCreate(ctx, book.Book{Title: "t", Author: "a", ISBN: "111"})
			require.NoError(t, err)

			got, err := repo.GetByISBN(ctx, "111")
			require.NoError(t, err)
			assert.Equal(t, created, got)
			assert.Nil(t, got.ThumbnailURL)
		})
	}
}

func TestRepository_GetOrCreate_Concurrent(t *testing.T) {
	for name, open := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			ctx := context.Background()

			const workers = 8
			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				inserts int
				ids     = map[int64]struct{}{}
			)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					b, created, err := repo.GetOrCreate(ctx, book.Book{Title: "t", Author: "a", ISBN: "222"})
					if !assert.NoError(t, err) {
						return
					}
					mu.Lock()
					defer mu.Unlock()
					if created {
						inserts++
					}
					ids[b.ID] = struct{}{}
				}()
			}
			wg.Wait()

			assert.Equal(t, 1, inserts)
			assert.Len(t, ids, 1)
		})
	}
}
