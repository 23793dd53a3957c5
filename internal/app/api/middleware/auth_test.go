package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/grupomv/mapaventas/pkg/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string, roles []string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestParseToken(t *testing.T) {
	raw := signToken(t, testSecret, "user-1", []string{"adminmv", "ventas"})

	userID, roles := parseToken("Bearer "+raw, testSecret)
	require.Equal(t, "user-1", userID)
	require.Equal(t, []string{"adminmv", "ventas"}, []string(roles))
}

func TestParseToken_Invalid(t *testing.T) {
	raw := signToken(t, testSecret, "user-1", []string{"adminmv"})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", raw},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", "user-1", []string{"adminmv"})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userID, roles := parseToken(tc.header, testSecret)
			require.Empty(t, userID)
			require.Empty(t, roles)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: testSecret}}

	r := gin.New()
	r.GET("/ping", AuthMiddleware(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})

	// No token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "user-7", []string{"ventas"}))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "user-7", w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: testSecret}}

	r := gin.New()
	r.GET("/admin", AuthMiddleware(cfg), RequireRoles([]string{"superadminmv", "adminmv"}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "user-1", []string{"ventas"}))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "user-2", []string{"adminmv"}))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
