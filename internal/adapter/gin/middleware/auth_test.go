package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"recharge-service/internal/domain/user"
	"recharge-service/pkg/auth"
)

func setupAuthTestRouter(t *testing.T, tokens *auth.TokenManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", RequireAdmin(tokens, zaptest.NewLogger(t)), func(c *gin.Context) {
		claims := c.MustGet(ClaimsKey).(*auth.Claims)
		c.JSON(http.StatusOK, gin.H{"subject": claims.Subject})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin_ValidAdminToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthTestRouter(t, tokens)

	token, err := tokens.Issue("a1", "admin@recharge.local", user.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a1")
}

func TestRequireAdmin_MissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthTestRouter(t, tokens)

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
}

func TestRequireAdmin_MalformedHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthTestRouter(t, tokens)

	token, err := tokens.Issue("a1", "admin@recharge.local", user.RoleAdmin)
	require.NoError(t, err)

	// Token without the Bearer prefix is rejected.
	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_GarbageToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthTestRouter(t, tokens)

	w := doRequest(r, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_ExpiredToken(t *testing.T) {
	expired := auth.NewTokenManager("test-secret", -time.Minute)
	r := setupAuthTestRouter(t, expired)

	token, err := expired.Issue("a1", "admin@recharge.local", user.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_WrongSecret(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	other := auth.NewTokenManager("other-secret", time.Hour)
	r := setupAuthTestRouter(t, tokens)

	token, err := other.Issue("a1", "admin@recharge.local", user.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_NonAdminTokenForbidden(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthTestRouter(t, tokens)

	token, err := tokens.Issue("u1", "john@example.com", user.RoleUser)
	require.NoError(t, err)

	// A perfectly valid user token is not enough for admin routes.
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden")
}
