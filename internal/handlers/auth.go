package handlers

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/GoTodo/internal/config"
	"github.com/vaughan-dsouza/GoTodo/internal/models"
	"github.com/vaughan-dsouza/GoTodo/internal/store"
	"github.com/vaughan-dsouza/GoTodo/internal/utils"
	"github.com/vaughan-dsouza/GoTodo/internal/validate"
)

type AuthHandler struct {
	Store *store.Store

	secret    string
	accessTTL string
}

func NewAuthHandler(st *store.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Store:     st,
		secret:    cfg.Auth.Secret,
		accessTTL: cfg.Auth.AccessTTL,
	}
}

// ----------- Request/Response DTOs -------------

type registerReq struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required,oneof=user admin"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// -------------- REGISTER ----------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if fields := validate.Struct(req); fields != nil {
		utils.FieldErrors(w, fields)
		return
	}

	role, _ := models.ParseRole(req.Role)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
		Role:      role,
		IsActive:  true,
	}

	err = h.Store.WithTx(r.Context(), func(tx *store.Store) error {
		return tx.CreateUser(r.Context(), &user)
	})
	if errors.Is(err, store.ErrDuplicate) {
		utils.Error(w, http.StatusBadRequest, "username already exists")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]string{"message": "user created"})
}

// -------------- LOGIN ------------------------

// Login takes form-encoded credentials and answers with a bearer token.
// Unknown user, wrong password and inactive account all read the same.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		utils.Error(w, http.StatusBadRequest, "username and password required")
		return
	}

	user, err := h.Store.GetUserByUsername(r.Context(), username)
	if errors.Is(err, store.ErrNotFound) {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "db error")
		return
	}

	if !user.IsActive {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	access, exp, err := utils.GenerateToken(user.ID, user.Username, user.Role, h.secret, h.accessTTL)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "token error")
		return
	}

	utils.JSON(w, http.StatusOK, tokenResp{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   exp,
	})
}
