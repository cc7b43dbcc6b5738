package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wakanda-gov/platform/internal/domain"
	apperrors "github.com/wakanda-gov/platform/pkg/util/errorutil"
)

const claimsKey = "auth_claims"

// Middleware extracts and verifies bearer tokens on the request pipeline.
type Middleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, logger: logger}
}

// Handle enforces authentication. Requests without a well-formed
// "Bearer <token>" header, or with a token that fails verification, are
// rejected with 401 before any handler runs.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return apperrors.NewUnauthorized("Invalid or expired token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// Optional performs the same extraction but never blocks: verification
// failure or a missing header degrades to an anonymous request.
func (m *Middleware) Optional(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return c.Next()
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		m.logger.Warn("optional auth token rejected", zap.String("path", c.Path()))
		return c.Next()
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// RequireRoles gates a route behind an exact role allow-list. It must be
// composed after Handle; an unauthenticated request yields 401, a caller
// outside the allow-list 403.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Authentication required")
		}
		if !domain.Satisfies(claims.Role, allowed...) {
			return apperrors.NewForbidden("Insufficient permissions")
		}
		return c.Next()
	}
}

// ClaimsFromContext retrieves the verified identity attached by Handle or
// Optional, if any.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("Missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.NewUnauthorized("Invalid authorization header")
	}
	return parts[1], nil
}
