package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/GoTodo/internal/models"
	"github.com/vaughan-dsouza/GoTodo/internal/utils"
)

const testSecret = "test-secret"

func okHandler(t *testing.T, wantUserID int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUserID, claims.SubjectInt())
		w.WriteHeader(http.StatusOK)
	})
}

func signToken(t *testing.T, role models.Role) string {
	t.Helper()
	tok, _, err := utils.GenerateToken(7, "alice", role, testSecret, "15m")
	require.NoError(t, err)
	return tok
}

func TestAuthRejectsUniformly(t *testing.T) {
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without identity")
	}))

	cases := map[string]func(r *http.Request){
		"missing header": func(r *http.Request) {},
		"wrong scheme":   func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
		"empty token":    func(r *http.Request) { r.Header.Set("Authorization", "Bearer ") },
		"garbage token":  func(r *http.Request) { r.Header.Set("Authorization", "Bearer junk") },
		"bad cookie":     func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: "junk"}) },
	}

	for name, arrange := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			arrange(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Authentication Failed", body["detail"])
		})
	}
}

func TestAuthAcceptsHeaderToken(t *testing.T) {
	handler := Auth(testSecret)(okHandler(t, 7))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleUser))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthAcceptsCookieToken(t *testing.T) {
	handler := Auth(testSecret)(okHandler(t, 7))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, models.RoleUser)})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleBlocksNonAdmins(t *testing.T) {
	handler := Auth(testSecret)(RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/admin/todo", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleUser))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleAllowsAdmins(t *testing.T) {
	handler := Auth(testSecret)(RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/admin/todo", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleAdmin))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
