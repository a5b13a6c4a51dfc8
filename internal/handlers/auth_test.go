package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/GoTodo/internal/utils"
)

const registerBody = `{"username":"alice","email":"alice@example.com","first_name":"Alice","last_name":"Smith","password":"secret1","role":"user"}`

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func doForm(t *testing.T, router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterCreatesUser(t *testing.T) {
	router, mock, _ := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)INSERT INTO users .* RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "user created", body["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterValidation(t *testing.T) {
	router, mock, _ := newTestRouter(t)

	cases := map[string]string{
		"short password": `{"username":"alice","email":"alice@example.com","first_name":"Alice","last_name":"Smith","password":"short","role":"user"}`,
		"bad email":      `{"username":"alice","email":"nope","first_name":"Alice","last_name":"Smith","password":"secret1","role":"user"}`,
		"unknown role":   `{"username":"alice","email":"alice@example.com","first_name":"Alice","last_name":"Smith","password":"secret1","role":"superuser"}`,
		"missing fields": `{"username":"alice"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/auth/register", "", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	// nothing was persisted
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router, mock, _ := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(duplicateErr())
	mock.ExpectRollback()

	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", registerBody)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "username already exists", body["detail"])
}

func TestLoginIssuesClaimsBearingToken(t *testing.T) {
	router, mock, _ := newTestRouter(t)

	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(7, "alice", "alice@example.com", "Alice", "Smith", hashOf(t, "secret1"), "user", true, nil))

	rec := doForm(t, router, "/auth/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotZero(t, resp.ExpiresIn)

	claims, err := utils.VerifyToken(resp.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.SubjectInt())
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	router, mock, _ := newTestRouter(t)

	// unknown user
	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	// wrong password
	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(7, "alice", "alice@example.com", "Alice", "Smith", hashOf(t, "secret1"), "user", true, nil))

	// inactive account
	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).
		WithArgs("casper").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(9, "casper", "casper@example.com", "Casper", "Ghost", hashOf(t, "secret1"), "user", false, nil))

	for _, creds := range []url.Values{
		{"username": {"ghost"}, "password": {"secret1"}},
		{"username": {"alice"}, "password": {"wrong"}},
		{"username": {"casper"}, "password": {"secret1"}},
	} {
		rec := doForm(t, router, "/auth/login", creds)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]string
		decodeBody(t, rec, &body)
		assert.Equal(t, "Invalid credentials", body["detail"])
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	router, mock, _ := newTestRouter(t)

	rec := doForm(t, router, "/auth/login", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
