package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"tunedeck.org/tunedeck/internal/config"
	"tunedeck.org/tunedeck/models"
)

const (
	// ContextKeyClaims is the key for storing JWT claims in context
	ContextKeyClaims = "claims"

	// HeaderAPIKey is the request header carrying an API key
	HeaderAPIKey = "X-API-Key"
)

// Middleware is the authentication middleware
type Middleware struct {
	jwtService *JWTService
	config     *config.Config
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{
		jwtService: NewJWTService(cfg),
		config:     cfg,
	}
}

// authenticate resolves the caller's claims from an API key or a Bearer
// token and stores them in the context. API keys carry operator-level
// access.
func (m *Middleware) authenticate(c echo.Context) (*Claims, error) {
	if claims, ok := c.Get(ContextKeyClaims).(*Claims); ok {
		return claims, nil
	}

	if key := c.Request().Header.Get(HeaderAPIKey); key != "" {
		if !m.validAPIKey(key) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid API key")
		}
		claims := &Claims{
			Name:  "api-key",
			Roles: []models.Role{models.RoleOperator},
		}
		c.Set(ContextKeyClaims, claims)
		return claims, nil
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(parts[1])
	if err != nil {
		if err == ErrExpiredToken {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
		}
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	c.Set(ContextKeyClaims, claims)
	return claims, nil
}

// RequireAuth is middleware that requires a valid JWT bearer token or a
// configured API key.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Skip if auth is disabled
		if !m.config.Security.AuthEnabled {
			return next(c)
		}

		if _, err := m.authenticate(c); err != nil {
			return err
		}

		return next(c)
	}
}

// RequireRole is middleware that requires any of the given roles
func (m *Middleware) RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Skip if auth is disabled
			if !m.config.Security.AuthEnabled {
				return next(c)
			}

			claims, err := m.authenticate(c)
			if err != nil {
				return err
			}

			for _, required := range roles {
				for _, role := range claims.Roles {
					if role == required {
						return next(c)
					}
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
	}
}

// RequireAdmin is middleware that requires the admin role
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireRole(models.RoleAdmin)(next)
}

// RequireWrite is middleware that requires write permissions (admin or operator role)
func (m *Middleware) RequireWrite(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireRole(models.RoleAdmin, models.RoleOperator)(next)
}

// RequireRead is middleware that requires read permissions (any authenticated caller)
func (m *Middleware) RequireRead(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireAuth(next)
}

func (m *Middleware) validAPIKey(key string) bool {
	for _, configured := range m.config.Security.APIKeys {
		if subtle.ConstantTimeCompare([]byte(configured), []byte(key)) == 1 {
			return true
		}
	}
	return false
}

// GetClaims extracts JWT claims from Echo context
func GetClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*Claims)
	return claims, ok
}

// HasRole checks if the current caller has a specific role
func HasRole(c echo.Context, role models.Role) bool {
	claims, ok := GetClaims(c)
	if !ok {
		return false
	}

	for _, r := range claims.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin checks if the current caller is an admin
func IsAdmin(c echo.Context) bool {
	return HasRole(c, models.RoleAdmin)
}
