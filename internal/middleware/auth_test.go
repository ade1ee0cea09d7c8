package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storea/internal/domain"
	"storea/internal/domain/models"
	"storea/internal/httputil"

	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	subject string
}

func (v stubVerifier) VerifyToken(token string) (*models.SupabaseClaims, error) {
	if token != "good-token" {
		return nil, domain.ErrUnauthorized
	}
	claims := &models.SupabaseClaims{Role: "authenticated"}
	claims.Subject = v.subject
	return claims, nil
}

func (v stubVerifier) Close() error { return nil }

func authTestHandler(gotUserID *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUserID = httputil.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	var userID string
	h := AuthMiddleware(stubVerifier{})(authTestHandler(&userID))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	var userID string
	h := AuthMiddleware(stubVerifier{})(authTestHandler(&userID))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	var userID string
	h := AuthMiddleware(stubVerifier{subject: "user-1"})(authTestHandler(&userID))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", userID)
}

func TestAuthMiddleware_HealthIsPublic(t *testing.T) {
	var userID string
	h := AuthMiddleware(stubVerifier{})(authTestHandler(&userID))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, userID)
}
