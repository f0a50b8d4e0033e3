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

// HallsHandler exposes owner-scoped CRUD over wedding-hall records.
type HallsHandler struct {
	halls repository.HallRepository
}

// NewHallsHandler constructs the handler.
func NewHallsHandler(halls repository.HallRepository) *HallsHandler {
	return &HallsHandler{halls: halls}
}

// List handles GET /api/v1/halls.
func (h *HallsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	halls, err := h.halls.ListByUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	items := make([]dto.HallResponse, 0, len(halls))
	for _, hall := range halls {
		items = append(items, dto.NewHallResponse(hall))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /api/v1/halls.
func (h *HallsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.HallRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if req.Rating < 0 || req.Rating > 5 {
		return apperrors.NewValidationError("rating must be between 0 and 5", nil)
	}

	hall := &domain.WeddingHall{
		UserID:    principal.User.ID,
		Name:      req.Name,
		Address:   req.Address,
		Price:     req.Price,
		Capacity:  req.Capacity,
		Rating:    req.Rating,
		VisitedAt: req.VisitedAt,
		Memo:      req.Memo,
	}
	if err := h.halls.Create(c.Context(), hall); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewHallResponse(hall)})
}

// Get handles GET /api/v1/halls/:id.
func (h *HallsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	hall, err := h.halls.GetByID(c.Context(), int64(id), principal.User.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewHallResponse(hall)})
}

// Update handles PUT /api/v1/halls/:id.
func (h *HallsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	var req dto.HallRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	hall := &domain.WeddingHall{
		ID:        int64(id),
		UserID:    principal.User.ID,
		Name:      req.Name,
		Address:   req.Address,
		Price:     req.Price,
		Capacity:  req.Capacity,
		Rating:    req.Rating,
		VisitedAt: req.VisitedAt,
		Memo:      req.Memo,
	}
	if err := h.halls.Update(c.Context(), hall); err != nil {
		return apperrors.MapError(err)
	}

	updated, err := h.halls.GetByID(c.Context(), int64(id), principal.User.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewHallResponse(updated)})
}

// Delete handles DELETE /api/v1/halls/:id.
func (h *HallsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	if err := h.halls.Delete(c.Context(), int64(id), principal.User.ID); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
