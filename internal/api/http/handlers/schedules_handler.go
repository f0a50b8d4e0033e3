package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/marryplan/marryplan-server/internal/api/dto"
	"github.com/marryplan/marryplan-server/internal/auth"
	"github.com/marryplan/marryplan-server/internal/domain"
	"github.com/marryplan/marryplan-server/internal/repository"
	apperrors "github.com/marryplan/marryplan-server/pkg/util"
)

// SchedulesHandler exposes owner-scoped CRUD over planning appointments.
type SchedulesHandler struct {
	schedules repository.ScheduleRepository
}

// NewSchedulesHandler constructs the handler.
func NewSchedulesHandler(schedules repository.ScheduleRepository) *SchedulesHandler {
	return &SchedulesHandler{schedules: schedules}
}

// List handles GET /api/v1/schedules.
func (h *SchedulesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	schedules, err := h.schedules.ListByUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	items := make([]dto.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		items = append(items, dto.NewScheduleResponse(schedule))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /api/v1/schedules.
func (h *SchedulesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.StartsAt.IsZero() {
		return apperrors.NewValidationError("title and starts_at required", nil)
	}
	if !req.EndsAt.IsZero() && req.EndsAt.Before(req.StartsAt) {
		return apperrors.NewValidationError("ends_at must not precede starts_at", nil)
	}

	schedule := &domain.Schedule{
		UserID:   principal.User.ID,
		Title:    req.Title,
		Location: req.Location,
		Memo:     req.Memo,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	if err := h.schedules.Create(c.Context(), schedule); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewScheduleResponse(schedule)})
}

// Get handles GET /api/v1/schedules/:id.
func (h *SchedulesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	schedule, err := h.schedules.GetByID(c.Context(), int64(id), principal.User.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewScheduleResponse(schedule)})
}

// Update handles PUT /api/v1/schedules/:id.
func (h *SchedulesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.StartsAt.IsZero() {
		return apperrors.NewValidationError("title and starts_at required", nil)
	}

	schedule := &domain.Schedule{
		ID:       int64(id),
		UserID:   principal.User.ID,
		Title:    req.Title,
		Location: req.Location,
		Memo:     req.Memo,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	if err := h.schedules.Update(c.Context(), schedule); err != nil {
		return apperrors.MapError(err)
	}

	updated, err := h.schedules.GetByID(c.Context(), int64(id), principal.User.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewScheduleResponse(updated)})
}

// Delete handles DELETE /api/v1/schedules/:id.
func (h *SchedulesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	if err := h.schedules.Delete(c.Context(), int64(id), principal.User.ID); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
