package catalog

import (
	"context"
	"errors"
	"log/slog"

	"bookshelf/internal/platform/googlebooks"
)

type VolumeSearcher interface {
	Volumes(ctx context.Context, q googlebooks.VolumesQuery) (*googlebooks.VolumesResponse, error)
}

// Service wraps the volumes API. Upstream failures are logged and read as zero results.
type Service struct {
	client VolumeSearcher
}

func NewService(client VolumeSearcher) *Service {
	return &Service{client: client}
}

// Search looks the query up as an author first and falls back to a plain text
// search once when the author search comes back empty. An error status from
// the author search counts as empty; transport and decode failures do not.
func (s *Service) Search(ctx context.Context, query string) []Result {
	if query == "" {
		return []Result{}
	}

	res, err := s.client.Volumes(ctx, googlebooks.VolumesQuery{
		Q:          "inauthor:" + query,
		MaxResults: SearchLimit,
		OrderBy:    googlebooks.OrderRelevance,
	})
	if err != nil {
		slog.Warn("catalog author search failed", "query", query, "error", err)
		if !errors.Is(err, googlebooks.ErrUnexpectedStatus) {
			return []Result{}
		}
		res = &googlebooks.VolumesResponse{}
	}

	if len(res.Items) == 0 {
		slog.Debug("no author matches, falling back to text search", "query", query)
		res, err = s.client.Volumes(ctx, googlebooks.VolumesQuery{
			Q:          query,
			MaxResults: SearchLimit,
			OrderBy:    googlebooks.OrderRelevance,
		})
		if err != nil {
			slog.Warn("catalog text search failed", "query", query, "error", err)
			return []Result{}
		}
	}

	return NormalizeAll(res.Items)
}

// ByAuthor returns up to RelatedLimit volumes by author.
func (s *Service) ByAuthor(ctx context.Context, author string) []Result {
	if author == "" {
		return []Result{}
	}

	res, err := s.client.Volumes(ctx, googlebooks.VolumesQuery{
		Q:          "inauthor:" + author,
		MaxResults: RelatedLimit,
	})
	if err != nil {
		slog.Warn("catalog related search failed", "author", author, "error", err)
		return []Result{}
	}
	return NormalizeAll(res.Items)
}
