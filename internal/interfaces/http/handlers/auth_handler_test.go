package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"firmdesk.backend/internal/domain/entities"
	"firmdesk.backend/internal/interfaces/http/middleware"
	"firmdesk.backend/internal/usecases"
	"firmdesk.backend/pkg/crypto"
	"firmdesk.backend/pkg/jwt"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *memUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUserRepo()
	tokens := newMemTokenRepo()
	jwtService := jwt.NewService("test-secret", time.Hour)
	h := NewAuthHandler(usecases.NewAuthUsecase(users, tokens, jwtService, 24*time.Hour))

	r := gin.New()
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}
	protected := r.Group("/api/v1/auth", middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/me", h.Me)
		protected.POST("/change-password", h.ChangePassword)
		protected.POST("/logout-all", h.LogoutAll)
	}
	return r, users
}

func seedActiveUser(t *testing.T, users *memUserRepo, email, password string) *entities.User {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	user := &entities.User{
		Email:        email,
		FullName:     "Ama Mensah",
		PasswordHash: hash,
		Role:         entities.UserRoleClient,
		IsActive:     true,
		IsVerified:   true,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	r, users := newAuthRouter(t)
	seedActiveUser(t, users, "ama@acme.com", "s3cret-pass")

	w := postJSON(t, r, "/api/v1/auth/login", gin.H{
		"username": "ama@acme.com",
		"password": "s3cret-pass",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)
	require.NotContains(t, w.Body.String(), "passwordHash")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	require.Contains(t, me.Body.String(), "ama@acme.com")
}

func TestAuthHandler_LoginErrors(t *testing.T) {
	r, users := newAuthRouter(t)
	seedActiveUser(t, users, "ama@acme.com", "s3cret-pass")

	w := postJSON(t, r, "/api/v1/auth/login", gin.H{"username": "ama@acme.com"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/v1/auth/login", gin.H{
		"username": "ama@acme.com",
		"password": "wrong-pass",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "ERR_INVALID_CREDENTIALS")
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	r, users := newAuthRouter(t)
	seedActiveUser(t, users, "ama@acme.com", "s3cret-pass")

	w := postJSON(t, r, "/api/v1/auth/login", gin.H{
		"username": "ama@acme.com",
		"password": "s3cret-pass",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = postJSON(t, r, "/api/v1/auth/refresh", gin.H{"refreshToken": login.RefreshToken}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rotated struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rotated))
	require.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	// The consumed token is gone.
	w = postJSON(t, r, "/api/v1/auth/refresh", gin.H{"refreshToken": login.RefreshToken}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, r, "/api/v1/auth/logout", gin.H{"refreshToken": rotated.RefreshToken}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = postJSON(t, r, "/api/v1/auth/refresh", gin.H{"refreshToken": rotated.RefreshToken}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	r, users := newAuthRouter(t)
	seedActiveUser(t, users, "ama@acme.com", "old-password")

	w := postJSON(t, r, "/api/v1/auth/login", gin.H{
		"username": "ama@acme.com",
		"password": "old-password",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	bearer := map[string]string{"Authorization": "Bearer " + login.AccessToken}

	w = postJSON(t, r, "/api/v1/auth/change-password", gin.H{
		"currentPassword": "old-password",
		"newPassword":     "short",
	}, bearer)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/v1/auth/change-password", gin.H{
		"currentPassword": "old-password",
		"newPassword":     "brand-new-password",
	}, bearer)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/v1/auth/login", gin.H{
		"username": "ama@acme.com",
		"password": "brand-new-password",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
