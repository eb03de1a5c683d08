package shelf

import (
	"net/http"
)

// Register mounts the shelf pages on mux. requireAuth guards every page
// except search, which runs behind optionalAuth.
func Register(mux *http.ServeMux, h *HTTPHandler, requireAuth, optionalAuth func(http.Handler) http.Handler) {
	mux.Handle("GET /{$}", requireAuth(http.HandlerFunc(h.Home)))
	mux.Handle("GET /wishlist/{$}", requireAuth(http.HandlerFunc(h.Wishlist)))
	mux.Handle("GET /search/{$}", optionalAuth(http.HandlerFunc(h.Search)))
	mux.Handle("POST /add_book_api/{$}", requireAuth(http.HandlerFunc(h.AddBook)))
	mux.Handle("GET /book_detail/{id}/{$}", requireAuth(http.HandlerFunc(h.BookDetail)))
	mux.Handle("GET /delete_book/{id}/{$}", requireAuth(http.HandlerFunc(h.DeleteBook)))
}
