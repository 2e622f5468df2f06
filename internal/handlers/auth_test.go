package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avudaiappan/blog-api/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// seedUser stores a user with a hashed password directly in the mock
// repository, bypassing the signup endpoint.
func seedUser(t *testing.T, repo *mockUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Email: email, Password: string(hash)}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func postJSON(t *testing.T, e http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSignup_HashesPassword(t *testing.T) {
	userRepo := newMockUserRepo()
	e := newTestServer(newMockPostRepo(), userRepo, newMockLinkRepo())

	rec := postJSON(t, e, "/user/signup", `{"email":"a@b.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := userRepo.GetUserByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	// The hash and token list must never appear on the wire.
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "tokens")
	assert.Contains(t, rec.Body.String(), "a@b.com")
}

func TestSignup_MissingFields(t *testing.T) {
	e := newTestServer(newMockPostRepo(), newMockUserRepo(), newMockLinkRepo())

	for _, body := range []string{`{}`, `{"email":"a@b.com"}`, `{"password":"secret123"}`} {
		rec := postJSON(t, e, "/user/signup", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestLogin_Success(t *testing.T) {
	userRepo := newMockUserRepo()
	e := newTestServer(newMockPostRepo(), userRepo, newMockLinkRepo())
	user := seedUser(t, userRepo, "a@b.com", "secret123")

	rec := postJSON(t, e, "/user/login", `{"email":"a@b.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@b.com", resp.User.Email)

	// Token must be signed with the configured secret and carry the
	// user's identity.
	claims := &models.JwtCustomClaims{}
	_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)

	// The raw token is appended to the user's active token list.
	stored, err := userRepo.GetUserByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{resp.Token}, stored.Tokens)
}

func TestLogin_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	userRepo := newMockUserRepo()
	e := newTestServer(newMockPostRepo(), userRepo, newMockLinkRepo())
	seedUser(t, userRepo, "a@b.com", "secret123")

	wrongPassword := postJSON(t, e, "/user/login", `{"email":"a@b.com","password":"nope"}`)
	unknownEmail := postJSON(t, e, "/user/login", `{"email":"ghost@b.com","password":"secret123"}`)

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLogin_MissingFields(t *testing.T) {
	e := newTestServer(newMockPostRepo(), newMockUserRepo(), newMockLinkRepo())

	rec := postJSON(t, e, "/user/login", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_RemovesOnlyPresentedToken(t *testing.T) {
	userRepo := newMockUserRepo()
	e := newTestServer(newMockPostRepo(), userRepo, newMockLinkRepo())
	user := seedUser(t, userRepo, "a@b.com", "secret123")

	// Simulate a pre-existing session, then log in for a second one.
	require.NoError(t, userRepo.AppendToken(context.Background(), user.ID.Hex(), "other-session"))

	rec := postJSON(t, e, "/user/login", `{"email":"a@b.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/user/logout", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	logoutRec := httptest.NewRecorder()
	e.ServeHTTP(logoutRec, req)
	require.Equal(t, http.StatusNoContent, logoutRec.Code)

	stored, err := userRepo.GetUserByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{"other-session"}, stored.Tokens)
}

func TestLogout_MissingHeader(t *testing.T) {
	e := newTestServer(newMockPostRepo(), newMockUserRepo(), newMockLinkRepo())

	req := httptest.NewRequest(http.MethodGet, "/user/logout", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
