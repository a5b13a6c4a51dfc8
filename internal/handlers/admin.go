package handlers

import (
	"errors"
	"net/http"

	"github.com/vaughan-dsouza/GoTodo/internal/models"
	"github.com/vaughan-dsouza/GoTodo/internal/store"
	"github.com/vaughan-dsouza/GoTodo/internal/utils"
)

// AdminHandler serves the role-gated admin surface. The role check itself
// lives in middleware.RequireRole; by the time these run the caller is an
// admin or the request never got here.
type AdminHandler struct {
	Store *store.Store
}

func NewAdminHandler(st *store.Store) *AdminHandler {
	return &AdminHandler{Store: st}
}

// ListTodos returns every todo across all owners.
func (h *AdminHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.Store.ListAllTodos(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string][]models.Todo{"todos": todos})
}

// DeleteTodo removes any user's todo by id.
func (h *AdminHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusNotFound, todoNotFound)
		return
	}

	err := h.Store.WithTx(r.Context(), func(tx *store.Store) error {
		return tx.DeleteTodoAny(r.Context(), id)
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
