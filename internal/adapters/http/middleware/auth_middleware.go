package middleware

import (
	"strings"

	"lendflow-los/internal/adapters/persistence/repositories"
	"lendflow-los/internal/config"
	"lendflow-los/internal/pkg/jwt"
	"lendflow-los/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by the authentication gate
const (
	LocalUserID   = "userID"
	LocalUsername = "username"
	LocalRole     = "role"
)

// Authenticate is the per-request authentication gate. It never rejects and
// never terminates the chain: a missing, malformed or invalid credential
// leaves the request anonymous and lets the authorization layer decide
// between 401 and 403 further down.
func Authenticate(cfg *config.Config, codec *jwt.Codec, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Bypass check: allow-listed paths skip extraction entirely
		if isBypassed(c.Path(), cfg.Auth.BypassPrefixes) {
			return c.Next()
		}

		// 2. Idempotent on repeat filtering of the same request
		if c.Locals(LocalUserID) != nil {
			return c.Next()
		}

		// 3. Extraction: Authorization header, Bearer scheme only
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}
		accessToken := strings.TrimPrefix(authHeader, "Bearer ")

		// 4. Resolution: fail closed to anonymous on any token problem
		if !codec.IsValid(accessToken, jwt.TokenTypeAccess) {
			return c.Next()
		}
		claims, err := codec.Decode(accessToken)
		if err != nil {
			return c.Next()
		}

		user, err := userRepo.GetByUsername(c.Context(), claims.Subject)
		if err != nil || !user.IsActive {
			return c.Next()
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUsername, user.Username)
		c.Locals(LocalRole, user.Role)

		// 5. Always forward to the next stage
		return c.Next()
	}
}

// isBypassed reports whether the path is on the allow-list. The root path
// matches exactly; an entry matches either the whole path or a segment
// boundary, so "/api/v1/auth/logout" covers "/api/v1/auth/logout" but not
// "/api/v1/auth/logout-all".
func isBypassed(path string, prefixes []string) bool {
	if path == "/" {
		return true
	}
	for _, prefix := range prefixes {
		if path == prefix {
			return true
		}
		if strings.HasPrefix(path, prefix) && path[len(prefix)] == '/' {
			return true
		}
	}
	return false
}

// RequireAuth rejects anonymous requests with a 401 envelope
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(LocalUserID) == nil {
			return response.Unauthenticated(c, "Access token required")
		}
		return c.Next()
	}
}

// RequireRoles rejects authenticated requests whose role is not allowed
func RequireRoles(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthenticated(c, "Access token required")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.AccessDenied(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RequireRoles("ADMIN")
}

// OfficerOrAdmin allows OFFICER or ADMIN roles
func OfficerOrAdmin() fiber.Handler {
	return RequireRoles("OFFICER", "ADMIN")
}
