package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/booktime/backend/internal/infrastructure/auth"
	"github.com/booktime/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key",
		AccessTokenExpiration: time.Hour,
		Issuer:                "booktime-test",
	})
}

func issueToken(t *testing.T, jwtService *auth.JWTService, staff bool) string {
	t.Helper()
	token, _, err := jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "customer@booktime.domain",
		Staff:  staff,
	})
	require.NoError(t, err)
	return token
}

func jwtTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetJWTUserID(c),
			"email":   GetJWTEmail(c),
			"staff":   GetJWTStaff(c),
		})
	})
	router.GET("/protected", chain...)
	return router
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("valid token passes and sets claims", func(t *testing.T) {
		router := jwtTestRouter(JWTAuthMiddleware(jwtService))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, jwtService, false))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "customer@booktime.domain")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		router := jwtTestRouter(JWTAuthMiddleware(jwtService))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		router := jwtTestRouter(JWTAuthMiddleware(jwtService))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := auth.NewJWTService(config.JWTConfig{
			Secret:                "another-secret",
			AccessTokenExpiration: time.Hour,
			Issuer:                "booktime-test",
		})
		router := jwtTestRouter(JWTAuthMiddleware(jwtService))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, other, false))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("anonymous request passes without claims", func(t *testing.T) {
		router := jwtTestRouter(OptionalJWTAuthMiddleware(jwtService))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":""`)
	})

	t.Run("valid token sets claims", func(t *testing.T) {
		router := jwtTestRouter(OptionalJWTAuthMiddleware(jwtService))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, jwtService, true))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"staff":true`)
	})
}

func TestRequireStaff(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("staff token passes", func(t *testing.T) {
		router := jwtTestRouter(JWTAuthMiddleware(jwtService), RequireStaff())

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, jwtService, true))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("customer token is forbidden", func(t *testing.T) {
		router := jwtTestRouter(JWTAuthMiddleware(jwtService), RequireStaff())

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, jwtService, false))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
	})
}
