package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marryplan/marryplan-server/internal/api/dto"
	"github.com/marryplan/marryplan-server/internal/observability"
	"github.com/marryplan/marryplan-server/internal/repository"
)

// AdminHandler exposes operator-only endpoints behind the ADMIN role guard.
type AdminHandler struct {
	users   repository.UserRepository
	metrics *observability.Metrics
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(users repository.UserRepository, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{users: users, metrics: metrics}
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.NewUserResponse(user))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Metrics handles GET /api/v1/admin/metrics.
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"requests": requests,
			"errors":   errs,
		},
	})
}
