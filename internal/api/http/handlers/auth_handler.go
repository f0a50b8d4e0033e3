package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/marryplan/marryplan-server/internal/api/dto"
	"github.com/marryplan/marryplan-server/internal/auth"
	"github.com/marryplan/marryplan-server/internal/service"
	apperrors "github.com/marryplan/marryplan-server/pkg/util"
)

// AuthHandler exposes register, login and identity-echo endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("username, name, password required", nil)
	}

	user, issued, err := h.auth.Register(c.Context(), req.Username, req.Name, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{
				Token:     issued.Token,
				ExpiresAt: issued.ExpiresAt,
				ExpiresIn: issued.ExpiresIn,
			},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, issued, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{
				Token:     issued.Token,
				ExpiresAt: issued.ExpiresAt,
				ExpiresIn: issued.ExpiresIn,
			},
		},
	})
}

// Me handles GET /auth/me for authenticated callers.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(principal.User)})
}
