package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vaughan-dsouza/GoTodo/internal/config"
	"github.com/vaughan-dsouza/GoTodo/internal/middleware"
	"github.com/vaughan-dsouza/GoTodo/internal/models"
	"github.com/vaughan-dsouza/GoTodo/internal/store"
	"github.com/vaughan-dsouza/GoTodo/internal/utils"
)

type Handler struct {
	Auth  *AuthHandler
	Todos *TodoHandler
	Admin *AdminHandler
	Users *UserHandler
	Books *BookHandler

	secret string
}

func NewHandler(st *store.Store, books *store.BookStore, cfg *config.Config) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(st, cfg),
		Todos:  NewTodoHandler(st),
		Admin:  NewAdminHandler(st),
		Users:  NewUserHandler(st),
		Books:  NewBookHandler(books),
		secret: cfg.Auth.Secret,
	}
}

// Routes mounts every endpoint onto one router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthy", h.Healthy)

	// Public
	r.Post("/auth/register", h.Auth.Register)
	r.Post("/auth/login", h.Auth.Login)

	// Books live in process memory and carry no auth
	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.Books.List)
		r.Get("/{id}", h.Books.Get)
		r.Post("/", h.Books.Create)
		r.Put("/{id}", h.Books.Update)
		r.Delete("/{id}", h.Books.Delete)
	})

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.secret))

		r.Get("/todos", h.Todos.List)
		r.Post("/todos", h.Todos.Create)
		r.Get("/todos/{id}", h.Todos.Get)
		r.Put("/todos/{id}", h.Todos.Update)
		r.Delete("/todos/{id}", h.Todos.Delete)

		r.Get("/user/profile", h.Users.Profile)
		r.Put("/user/change_password", h.Users.ChangePassword)
		r.Put("/user/phone_number/{number}", h.Users.UpdatePhoneNumber)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Get("/admin/todo", h.Admin.ListTodos)
			r.Delete("/admin/todo/{id}", h.Admin.DeleteTodo)
		})
	})

	return r
}

func (h *Handler) Healthy(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "Healthy"})
}

// pathID reads the {id} route parameter; anything that is not a positive
// integer reads the same as a missing record.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
