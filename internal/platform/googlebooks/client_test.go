package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL), WithHTTPClient(server.Client())}, opts...)
	return NewClient("bookshelf-test", time.Second, opts...)
}

func TestVolumes_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "inauthor:Tolkien", r.URL.Query().Get("q"))
		assert.Equal(t, "40", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "relevance", r.URL.Query().Get("orderBy"))
		assert.Equal(t, "bookshelf-test", r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"id": "abc",
				"volumeInfo": {
					"title": "The Hobbit",
					"authors": ["J.R.R. Tolkien"],
					"industryIdentifiers": [
						{"type": "ISBN_10", "identifier": "0261103342"},
						{"type": "ISBN_13", "identifier": "9780261103344"}
					],
					"imageLinks": {"thumbnail": "http://books.google.com/thumb"}
				}
			}]
		}`))
	})

	res, err := client.Volumes(context.Background(), VolumesQuery{Q: "inauthor:Tolkien", MaxResults: 40, OrderBy: OrderRelevance})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	info := res.Items[0].VolumeInfo
	assert.Equal(t, "The Hobbit", info.Title)
	assert.Equal(t, []string{"J.R.R. Tolkien"}, info.Authors)
	assert.Equal(t, "ISBN_10", info.IndustryIdentifiers[0].Type)
	assert.Equal(t, "http://books.google.com/thumb", info.ImageLinks.Thumbnail)
}

func TestVolumes_QueryEscapingAndAPIKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "村上 春樹&x", r.URL.Query().Get("q"))
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))
		assert.Empty(t, r.URL.Query().Get("orderBy"))
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	}, WithAPIKey("secret-key"))

	res, err := client.Volumes(context.Background(), VolumesQuery{Q: "村上 春樹&x"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestVolumes_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	})

	res, err := client.Volumes(context.Background(), VolumesQuery{Q: "x"})
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "429")
}

func TestVolumes_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{invalid json`))
	})

	_, err := client.Volumes(context.Background(), VolumesQuery{Q: "x"})
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestVolumes_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)

	client := NewClient("bookshelf-test", 50*time.Millisecond, WithBaseURL(server.URL))

	_, err := client.Volumes(context.Background(), VolumesQuery{Q: "x"})
	require.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("ua", 0)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Nil(t, c.limiter)

	c = NewClient("ua", time.Second, WithRateLimit(2))
	require.NotNil(t, c.limiter)
	assert.InDelta(t, 2.0, float64(c.limiter.Limit()), 0.001)
}
