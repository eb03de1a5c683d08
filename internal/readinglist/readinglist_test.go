package readinglist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStatus(t *testing.T) {
	for _, s := range []string{"read", "reading", "wishlist"} {
		got, err := ValidateStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), got)
	}

	for _, s := range []string{"", "READ", "finished", "want_to_read"} {
		_, err := ValidateStatus(s)
		assert.ErrorIs(t, err, ErrInvalidStatus, s)
	}
}

func TestParseSort(t *testing.T) {
	tests := map[string]Sort{
		"":           SortAddedDate,
		"added_date": SortAddedDate,
		"title":      SortTitle,
		"author":     SortAuthor,
		"rating":     SortAddedDate,
		"Title":      SortAddedDate,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseSort(raw), raw)
	}
}
