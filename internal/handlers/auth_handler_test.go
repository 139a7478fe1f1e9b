package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/internal/models"
	"todoapp/internal/services"
)

type stubUserService struct {
	byEmail map[string]*models.User
}

func (s *stubUserService) CreateUserWithPassword(ctx context.Context, user *models.User, plainPassword string) error {
	user.ID = int64(len(s.byEmail) + 1)
	s.byEmail[user.Email] = user
	return nil
}

func (s *stubUserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.byEmail[strings.ToLower(strings.TrimSpace(email))], nil
}

func (s *stubUserService) UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return nil
}

func (s *stubUserService) RotateRefresh(ctx context.Context, oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	return nil, nil
}

func (s *stubUserService) ClearRefresh(ctx context.Context, userID int64) error { return nil }

func (s *stubUserService) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return nil, nil
}

func newAuthRouter(users *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(users, services.NewAuthService())
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	return r
}

func seedUser(t *testing.T, email, password string) *stubUserService {
	t.Helper()
	auth := services.NewAuthService()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &stubUserService{byEmail: map[string]*models.User{
		email: {ID: 1, Name: "Alice", Email: email, PasswordHash: hash},
	}}
}

func TestLoginReturnsToken(t *testing.T) {
	r := newAuthRouter(seedUser(t, "alice@example.com", "sup3rsecret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"alice@example.com","password":"sup3rsecret"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.NotEmpty(t, body.RefreshToken)
}

func TestLoginWrongPasswordIs422(t *testing.T) {
	r := newAuthRouter(seedUser(t, "alice@example.com", "sup3rsecret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "email")
}

func TestLoginUnknownEmailIs422(t *testing.T) {
	r := newAuthRouter(&stubUserService{byEmail: map[string]*models.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"nobody@example.com","password":"whatever"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRegisterCreatesUserAndReturnsTokens(t *testing.T) {
	users := &stubUserService{byEmail: map[string]*models.User{}}
	r := newAuthRouter(users)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"name":"Bob","email":"bob@example.com","password":"longenough"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, users.byEmail, "bob@example.com")

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
}

func TestRegisterDuplicateEmailIs422(t *testing.T) {
	r := newAuthRouter(seedUser(t, "alice@example.com", "sup3rsecret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"name":"Alice","email":"alice@example.com","password":"longenough"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
