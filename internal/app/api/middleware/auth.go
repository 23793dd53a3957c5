package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/grupomv/mapaventas/pkg/config"
	"github.com/grupomv/mapaventas/pkg/response"
	"github.com/grupomv/mapaventas/pkg/types"
)

const (
	// UserIDKey and RolesKey are the gin.Context keys the auth middleware
	// populates for downstream handlers.
	UserIDKey = "user_id"
	RolesKey  = "roles"
)

type claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// parseToken extracts user id and roles from a bearer token. Any parse or
// validation failure yields an empty role set: role information that cannot
// be verified never grants visibility.
func parseToken(header, secret string) (string, types.RoleSet) {
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return "", nil
	}
	var cl claims
	tok, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", nil
	}
	return cl.Subject, types.RoleSet(cl.Roles)
}

// AuthMiddleware requires a valid bearer token and stores the caller's id and
// roles in the context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, roles := parseToken(c.GetHeader("Authorization"), cfg.Auth.JWTSecret)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "missing or invalid token"))
			return
		}
		c.Set(UserIDKey, userID)
		c.Set(RolesKey, roles)
		c.Next()
	}
}

// RequireRoles aborts unless the caller holds at least one of the given roles.
// Must run after AuthMiddleware.
func RequireRoles(roles []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !RolesFrom(c).HasAny(roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorT[any](response.APIResponseCodeForbidden, "insufficient role"))
			return
		}
		c.Next()
	}
}

// RolesFrom returns the caller's role set, empty when absent.
func RolesFrom(c *gin.Context) types.RoleSet {
	if v, ok := c.Get(RolesKey); ok {
		if roles, ok := v.(types.RoleSet); ok {
			return roles
		}
	}
	return nil
}
