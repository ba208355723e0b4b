// Package middleware provides HTTP middleware components for the
// application: JWT authentication, principal resolution, and the
// staff/superuser guards used by the admin panel.
package middleware

import (
	"log"
	"strings"

	"saudapakka/internal/models"
	"saudapakka/internal/services/auth"
	"saudapakka/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the bearer token, validates it, and stores both the raw
// claims and the derived principal in the request context.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Handler rejects requests without a valid token.
// It checks for:
// - Presence of Authorization header with Bearer token
// - Valid JWT signature and expiration
// - Token version matching the current user version
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	claims, err := m.resolveClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	c.Locals("claims", claims)
	c.Locals("principal", models.PrincipalFromClaims(claims))
	return c.Next()
}

// OptionalHandler resolves the principal when a valid token is present
// and falls back to the anonymous guest otherwise. Used on the public
// listing endpoints, where visibility depends on who is asking.
func (m *AuthMiddleware) OptionalHandler(c *fiber.Ctx) error {
	claims, err := m.resolveClaims(c)
	if err != nil {
		c.Locals("principal", models.AnonymousPrincipal())
		return c.Next()
	}

	c.Locals("claims", claims)
	c.Locals("principal", models.PrincipalFromClaims(claims))
	return c.Next()
}

func (m *AuthMiddleware) resolveClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	currentVersion, err := m.authService.GetUserTokenVersion(claims.UserID)
	if err != nil {
		log.Printf("Error getting token version for %s: %v", claims.UserID, err)
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}
	if claims.TokenVersion != currentVersion {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "session expired")
	}

	user, err := m.authService.GetUserByID(claims.UserID)
	if err != nil {
		log.Printf("User %s from token not found", claims.UserID)
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "account is blocked")
	}

	return claims, nil
}

// Principal returns the request actor stored by the auth middleware,
// defaulting to the anonymous guest.
func Principal(c *fiber.Ctx) models.Principal {
	p, ok := c.Locals("principal").(models.Principal)
	if !ok {
		return models.AnonymousPrincipal()
	}
	return p
}

// StaffOnly requires the staff flag (listing visibility tier).
func StaffOnly(c *fiber.Ctx) error {
	p := Principal(c)
	if !p.Authenticated || !p.IsStaff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Staff privileges required"})
	}
	return c.Next()
}

// SuperuserOnly requires the superuser flag (moderation tier). Staff
// without superuser can see every listing but cannot moderate.
func SuperuserOnly(c *fiber.Ctx) error {
	p := Principal(c)
	if !p.Authenticated || !p.IsSuperuser {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Superuser privileges required"})
	}
	return c.Next()
}
