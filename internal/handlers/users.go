package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/GoTodo/internal/middleware"
	"github.com/vaughan-dsouza/GoTodo/internal/models"
	"github.com/vaughan-dsouza/GoTodo/internal/store"
	"github.com/vaughan-dsouza/GoTodo/internal/utils"
	"github.com/vaughan-dsouza/GoTodo/internal/validate"
)

type UserHandler struct {
	Store *store.Store
}

func NewUserHandler(st *store.Store) *UserHandler {
	return &UserHandler{Store: st}
}

type changePasswordReq struct {
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ---------------------- PROFILE ----------------------

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), claims.SubjectInt())
	if errors.Is(err, store.ErrNotFound) {
		utils.Error(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]*models.User{"user_data": user})
}

// ---------------------- CHANGE PASSWORD ----------------------

// ChangePassword re-authenticates with the current password before
// swapping in the new hash. The length check runs first so malformed
// input never reaches bcrypt.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}

	var req changePasswordReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if fields := validate.Struct(req); fields != nil {
		utils.FieldErrors(w, fields)
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), claims.SubjectInt())
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}

	// wrong current password is a failed re-auth, not a forbidden action
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Error(w, http.StatusUnauthorized, "Error on password change")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	err = h.Store.WithTx(r.Context(), func(tx *store.Store) error {
		return tx.UpdateUserPassword(r.Context(), user.ID, string(hash))
	})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "db error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------- PHONE NUMBER ----------------------

func (h *UserHandler) UpdatePhoneNumber(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}

	number := chi.URLParam(r, "number")
	if number == "" {
		utils.Error(w, http.StatusBadRequest, "phone number required")
		return
	}

	err := h.Store.WithTx(r.Context(), func(tx *store.Store) error {
		return tx.UpdateUserPhoneNumber(r.Context(), claims.SubjectInt(), number)
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.Error(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "db error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
