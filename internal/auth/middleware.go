package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/marryplan/marryplan-server/internal/domain"
	"github.com/marryplan/marryplan-server/internal/repository"
)

const principalKey = "auth_principal"

// bearerPrefix is matched case-sensitively with exactly one space. Anything
// else counts as "no token sent", since many routes are public.
const bearerPrefix = "Bearer "

// Principal represents the authenticated caller attached to a request. Role
// is the identity store's current role rather than the token's embedded one,
// so a role change takes effect without waiting for the token to expire.
type Principal struct {
	User *domain.User
	Role domain.Role
}

// Middleware attaches a Principal to requests bearing a valid token. It never
// rejects a request itself: expired, malformed or orphaned tokens leave the
// request anonymous, and the route guards decide what anonymous may do.
type Middleware struct {
	validator *Validator
	users     repository.UserRepository
	logger    *zap.Logger
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(validator *Validator, users repository.UserRepository, logger *zap.Logger) *Middleware {
	return &Middleware{validator: validator, users: users, logger: logger}
}

// Handle runs once per inbound request, before business handlers.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token, found := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), bearerPrefix)
	if !found || token == "" {
		return c.Next()
	}

	result := m.validator.Validate(token)
	if !result.Valid() {
		m.logger.Debug("bearer token rejected",
			zap.String("status", result.Status.String()),
			zap.String("reason", result.Reason))
		return c.Next()
	}

	// Re-fetch by username so a deleted account or a changed role is honored
	// immediately. A failed lookup leaves the request anonymous.
	user, err := m.users.GetByUsername(c.Context(), result.Claims.Subject)
	if err != nil {
		m.logger.Debug("identity lookup failed, proceeding anonymous",
			zap.String("username", result.Claims.Subject),
			zap.Error(err))
		return c.Next()
	}
	if user.Status != domain.UserStatusActive {
		m.logger.Debug("identity not active, proceeding anonymous",
			zap.String("username", user.Username))
		return c.Next()
	}

	c.Locals(principalKey, &Principal{User: user, Role: user.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(principalKey).(*Principal)
	return principal, ok && principal != nil
}
