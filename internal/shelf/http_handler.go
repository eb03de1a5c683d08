package shelf

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"bookshelf/internal/book"
	"bookshelf/internal/catalog"
	"bookshelf/internal/httpx"
	"bookshelf/internal/readinglist"
)

const defaultSort = "added_date"

type HTTPHandler struct {
	lists   *readinglist.Service
	catalog *catalog.Service
}

func NewHTTPHandler(lists *readinglist.Service, catalog *catalog.Service) *HTTPHandler {
	return &HTTPHandler{lists: lists, catalog: catalog}
}

// SearchResult is a catalog hit annotated with the caller's list status.
type SearchResult struct {
	catalog.Result
	RegisteredStatus *readinglist.Status `json:"registered_status"`
}

type homePage struct {
	ReadBooks    []readinglist.Item `json:"read_books"`
	ReadingBooks []readinglist.Item `json:"reading_books"`
	CurrentSort  string             `json:"current_sort"`
}

type wishlistPage struct {
	WishlistBooks []readinglist.Item `json:"wishlist_books"`
	CurrentSort   string             `json:"current_sort"`
}

type searchPage struct {
	Books []SearchResult `json:"books"`
	Query string         `json:"query"`
}

type detailPage struct {
	UserBook     readinglist.Item `json:"user_book"`
	Book         *book.Book       `json:"book"`
	RelatedBooks []SearchResult   `json:"related_books"`
}

type addBookRequest struct {
	ISBN         string  `json:"isbn"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Status       string  `json:"status" validate:"required,oneof=read reading wishlist"`
}

var errTrailingData = errors.New("unexpected data after JSON value")

// decodeJSON reads exactly one JSON value from body.
func decodeJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return errTrailingData
		}
		return err
	}
	return nil
}

func sortParam(r *http.Request) (string, readinglist.Sort) {
	raw := r.URL.Query().Get("sort")
	if raw == "" {
		raw = defaultSort
	}
	return raw, readinglist.ParseSort(raw)
}

func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	httpx.LoggerFrom(r).Error(msg, "error", err)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

// Home handles GET /
// @Summary Read and reading shelves
// @Tags shelf
// @Produce json
// @Param sort query string false "title, author or added_date" default(added_date)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router / [get]
func (h *HTTPHandler) Home(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	current, sort := sortParam(r)

	read, err := h.lists.List(r.Context(), userID, readinglist.StatusRead, sort)
	if err != nil {
		internalError(w, r, "list read books", err)
		return
	}
	reading, err := h.lists.List(r.Context(), userID, readinglist.StatusReading, sort)
	if err != nil {
		internalError(w, r, "list reading books", err)
		return
	}

	httpx.JSONSuccess(w, r, homePage{
		ReadBooks:    read,
		ReadingBooks: reading,
		CurrentSort:  current,
	}, nil)
}

// Wishlist handles GET /wishlist/
// @Summary Wishlist shelf
// @Tags shelf
// @Produce json
// @Param sort query string false "title, author or added_date" default(added_date)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /wishlist/ [get]
func (h *HTTPHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	current, sort := sortParam(r)

	items, err := h.lists.List(r.Context(), httpx.UserIDFrom(r), readinglist.StatusWishlist, sort)
	if err != nil {
		internalError(w, r, "list wishlist", err)
		return
	}

	httpx.JSONSuccess(w, r, wishlistPage{WishlistBooks: items, CurrentSort: current}, nil)
}

// Search handles GET /search/
// @Summary Search the book catalog
// @Description Author search with a full-text fallback. Signed-in callers get their list status per result.
// @Tags shelf
// @Produce json
// @Param q query string false "Search query"
// @Success 200 {object} httpx.SuccessResponse
// @Router /search/ [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	index, err := h.lists.StatusIndex(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		internalError(w, r, "build ownership index", err)
		return
	}

	hits := h.catalog.Search(r.Context(), query)
	books := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		books = append(books, SearchResult{Result: hit, RegisteredStatus: index.StatusOf(hit.ISBN)})
	}

	httpx.JSONSuccess(w, r, searchPage{Books: books, Query: query}, nil)
}

// AddBook handles POST /add_book_api/
// @Summary Put a catalog result on a shelf
// @Tags shelf
// @Accept json
// @Produce json
// @Success 201 {object} httpx.MessageResponse
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /add_book_api/ [post]
func (h *HTTPHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONMessage(w, http.StatusRequestEntityTooLarge, false, "Request body too large")
			return
		}
		httpx.JSONMessage(w, http.StatusBadRequest, false, "Invalid JSON")
		return
	}

	if req.ISBN == "" || req.ISBN == catalog.SentinelISBN {
		httpx.JSONMessage(w, http.StatusBadRequest, false, "Invalid ISBN")
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONMessage(w, http.StatusBadRequest, false, "Invalid status")
		return
	}

	_, created, err := h.lists.Add(r.Context(), httpx.UserIDFrom(r), readinglist.AddInput{
		ISBN:         req.ISBN,
		Title:        req.Title,
		Author:       req.Author,
		ThumbnailURL: req.ThumbnailURL,
		Status:       readinglist.Status(req.Status),
	})
	if err != nil {
		httpx.LoggerFrom(r).Error("add book failed", "isbn", req.ISBN, "error", err)
		httpx.JSONMessage(w, http.StatusInternalServerError, false, err.Error())
		return
	}

	if !created {
		httpx.JSONMessage(w, http.StatusOK, true, "Already added")
		return
	}
	httpx.JSONMessage(w, http.StatusCreated, true, "Book added successfully")
}

// BookDetail handles GET /book_detail/{id}/
// @Summary Shelf entry with related titles by the same author
// @Tags shelf
// @Produce json
// @Param id path int true "Shelf entry id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /book_detail/{id}/ [get]
func (h *HTTPHandler) BookDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	userID := httpx.UserIDFrom(r)

	item, err := h.lists.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, readinglist.ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		internalError(w, r, "get shelf entry", err)
		return
	}

	related := []SearchResult{}
	if item.Book != nil && item.Book.Author != "" {
		index, err := h.lists.StatusIndex(r.Context(), userID)
		if err != nil {
			internalError(w, r, "build ownership index", err)
			return
		}
		for _, hit := range h.catalog.ByAuthor(r.Context(), item.Book.Author) {
			if hit.ISBN == item.Book.ISBN || index.Owns(hit.ISBN) {
				continue
			}
			related = append(related, SearchResult{Result: hit})
		}
	}

	httpx.JSONSuccess(w, r, detailPage{UserBook: item, Book: item.Book, RelatedBooks: related}, nil)
}

// DeleteBook handles GET /delete_book/{id}/
// @Summary Remove a shelf entry and redirect home
// @Tags shelf
// @Param id path int true "Shelf entry id"
// @Success 302
// @Failure 404 {object} httpx.ErrorResponse
// @Router /delete_book/{id}/ [get]
func (h *HTTPHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.lists.Delete(r.Context(), httpx.UserIDFrom(r), id); err != nil {
		if errors.Is(err, readinglist.ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		internalError(w, r, "delete shelf entry", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// pathID writes a 404 for ids that are not positive integers.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return 0, false
	}
	return id, true
}
