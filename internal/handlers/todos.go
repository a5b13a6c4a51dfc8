package handlers

import (
	"errors"
	"net/http"

	"github.com/vaughan-dsouza/GoTodo/internal/middleware"
	"github.com/vaughan-dsouza/GoTodo/internal/models"
	"github.com/vaughan-dsouza/GoTodo/internal/store"
	"github.com/vaughan-dsouza/GoTodo/internal/utils"
	"github.com/vaughan-dsouza/GoTodo/internal/validate"
)

const todoNotFound = "Todo not found"

type TodoHandler struct {
	Store *store.Store
}

func NewTodoHandler(st *store.Store) *TodoHandler {
	return &TodoHandler{Store: st}
}

// TodoRequest is the write payload for create and full-replace update.
// Completed is a pointer so an omitted value fails validation instead of
// silently meaning false.
type TodoRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"required,min=3,max=100"`
	Priority    int    `json:"priority" validate:"gte=1,lte=5"`
	Completed   *bool  `json:"completed" validate:"required"`
}

// ---------------------- LIST ----------------------

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}

	todos, err := h.Store.ListTodosByOwner(r.Context(), claims.SubjectInt())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, todos)
}

// ---------------------- GET ONE ----------------------

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}

	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusNotFound, todoNotFound)
		return
	}

	todo, err := h.Store.GetTodo(r.Context(), id, claims.SubjectInt())
	if errors.Is(err, store.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, todoNotFound)
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, todo)
}

// ---------------------- CREATE ----------------------

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}

	var req TodoRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if fields := validate.Struct(req); fields != nil {
		utils.FieldErrors(w, fields)
		return
	}

	todo := models.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   *req.Completed,
		OwnerID:     claims.SubjectInt(),
	}

	err := h.Store.WithTx(r.Context(), func(tx *store.Store) error {
		return tx.CreateTodo(r.Context(), &todo)
	})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusCreated, todo)
}

// ---------------------- UPDATE ----------------------

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}

	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusNotFound, todoNotFound)
		return
	}

	var req TodoRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if fields := validate.Struct(req); fields != nil {
		utils.FieldErrors(w, fields)
		return
	}

	todo := models.Todo{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   *req.Completed,
		OwnerID:     claims.SubjectInt(),
	}

	err := h.Store.WithTx(r.Context(), func(tx *store.Store) error {
		return tx.UpdateTodo(r.Context(), &todo)
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, todoNotFound)
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "db error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------- DELETE ----------------------

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}

	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusNotFound, todoNotFound)
		return
	}

	err := h.Store.WithTx(r.Context(), func(tx *store.Store) error {
		return tx.DeleteTodo(r.Context(), id, claims.SubjectInt())
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, todoNotFound)
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "db error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
