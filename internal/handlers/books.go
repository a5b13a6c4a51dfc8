package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vaughan-dsouza/GoTodo/internal/models"
	"github.com/vaughan-dsouza/GoTodo/internal/store"
	"github.com/vaughan-dsouza/GoTodo/internal/utils"
	"github.com/vaughan-dsouza/GoTodo/internal/validate"
)

const bookNotFound = "Book not found"

// BookHandler serves the in-memory books variant. No auth, no persistence.
type BookHandler struct {
	Store *store.BookStore
}

func NewBookHandler(st *store.BookStore) *BookHandler {
	return &BookHandler{Store: st}
}

type BookRequest struct {
	Title         string `json:"title" validate:"required,min=3"`
	Author        string `json:"author" validate:"required,min=3"`
	Description   string `json:"description" validate:"required,min=3,max=100"`
	Rating        int    `json:"rating" validate:"gte=1,lte=5"`
	PublishedDate int    `json:"published_date" validate:"gte=2022,lte=2030"`
}

// ---------------------- LIST ----------------------

// List returns the catalogue, narrowed by the optional rating and
// published_date query parameters.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	rating, ok := queryInt(w, r, "rating", 1, 5)
	if !ok {
		return
	}
	publishedDate, ok := queryInt(w, r, "published_date", 2022, 2030)
	if !ok {
		return
	}

	utils.JSON(w, http.StatusOK, h.Store.List(rating, publishedDate))
}

// ---------------------- GET ONE ----------------------

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusNotFound, bookNotFound)
		return
	}

	book, err := h.Store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, bookNotFound)
		return
	}

	utils.JSON(w, http.StatusOK, book)
}

// ---------------------- CREATE ----------------------

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if fields := validate.Struct(req); fields != nil {
		utils.FieldErrors(w, fields)
		return
	}

	book := models.Book{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Rating:        req.Rating,
		PublishedDate: req.PublishedDate,
	}
	h.Store.Create(&book)

	utils.JSON(w, http.StatusCreated, book)
}

// ---------------------- UPDATE ----------------------

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusNotFound, bookNotFound)
		return
	}

	var req BookRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if fields := validate.Struct(req); fields != nil {
		utils.FieldErrors(w, fields)
		return
	}

	err := h.Store.Update(models.Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Rating:        req.Rating,
		PublishedDate: req.PublishedDate,
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, bookNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------- DELETE ----------------------

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusNotFound, bookNotFound)
		return
	}

	if err := h.Store.Delete(id); errors.Is(err, store.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, bookNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// queryInt reads an optional bounded integer query parameter; 0 means absent.
func queryInt(w http.ResponseWriter, r *http.Request, name string, lo, hi int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		utils.FieldErrors(w, map[string]string{
			name: "must be between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi),
		})
		return 0, false
	}
	return v, true
}
