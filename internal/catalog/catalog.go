package catalog

import (
	"strings"

	"bookshelf/internal/platform/googlebooks"
)

const (
	// SentinelISBN marks a volume without a usable ISBN. Such results are never returned.
	SentinelISBN  = "N/A"
	UnknownTitle  = "N/A"
	UnknownAuthor = "著者不明"

	SearchLimit  = 40
	RelatedLimit = 20
)

// Result is a catalog volume normalized for the shelf.
type Result struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	ISBN         string `json:"isbn"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// ExtractISBN returns the first ISBN_13 or ISBN_10 identifier in listing order.
func ExtractISBN(ids []googlebooks.IndustryIdentifier) string {
	for _, id := range ids {
		if id.Type == "ISBN_13" || id.Type == "ISBN_10" {
			if id.Identifier == "" {
				return SentinelISBN
			}
			return id.Identifier
		}
	}
	return SentinelISBN
}

func Normalize(v googlebooks.Volume) Result {
	info := v.VolumeInfo

	title := info.Title
	if title == "" {
		title = UnknownTitle
	}
	author := UnknownAuthor
	if len(info.Authors) > 0 {
		author = strings.Join(info.Authors, ", ")
	}

	return Result{
		Title:        title,
		Author:       author,
		ISBN:         ExtractISBN(info.IndustryIdentifiers),
		ThumbnailURL: info.ImageLinks.Thumbnail,
	}
}

// NormalizeAll normalizes items and drops the ones that cannot be registered.
func NormalizeAll(items []googlebooks.Volume) []Result {
	out := make([]Result, 0, len(items))
	for _, item := range items {
		r := Normalize(item)
		if r.ISBN == SentinelISBN {
			continue
		}
		out = append(out, r)
	}
	return out
}
