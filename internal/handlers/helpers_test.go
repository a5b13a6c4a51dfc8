package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/GoTodo/internal/config"
	"github.com/vaughan-dsouza/GoTodo/internal/models"
	"github.com/vaughan-dsouza/GoTodo/internal/store"
	"github.com/vaughan-dsouza/GoTodo/internal/utils"
)

const testSecret = "test-secret"

var todoCols = []string{"id", "title", "description", "priority", "completed", "owner_id"}
var userCols = []string{"id", "username", "email", "first_name", "last_name", "hashed_password", "role", "is_active", "phone_number"}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Secret = testSecret
	cfg.Auth.AccessTTL = "15m"
	return cfg
}

// newTestRouter wires the full route tree over a mocked database and a
// fresh in-memory book store.
func newTestRouter(t *testing.T) (chi.Router, sqlmock.Sqlmock, *store.BookStore) {
	t.Helper()

	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	books := store.NewBookStore()
	h := NewHandler(store.New(sqlx.NewDb(raw, "sqlmock")), books, testConfig())
	return h.Routes(), mock, books
}

func bearerFor(t *testing.T, userID int64, username string, role models.Role) string {
	t.Helper()
	tok, _, err := utils.GenerateToken(userID, username, role, testSecret, "15m")
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(t *testing.T, router http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func duplicateErr() error {
	return &pgconn.PgError{Code: "23505"}
}
