package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurastyle/wardrobe-be/internal/models"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(models.User{ID: "user-1", Username: "ada"})
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada", claims.Username)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func protectedEcho(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seenUserID string
	handler := JWTMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		seenUserID = userID
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seenUserID
}

func TestJWTMiddlewareAcceptsBearerHeader(t *testing.T) {
	token, err := GenerateJWT(models.User{ID: "user-1", Username: "ada"})
	require.NoError(t, err)

	handler, seenUserID := protectedEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", *seenUserID)
}

func TestJWTMiddlewareFallsBackToCookie(t *testing.T) {
	token, err := GenerateJWT(models.User{ID: "user-2", Username: "grace"})
	require.NoError(t, err)

	handler, seenUserID := protectedEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-2", *seenUserID)
}

func TestJWTMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	handler, _ := protectedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
