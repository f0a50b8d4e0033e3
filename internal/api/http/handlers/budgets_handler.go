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

// BudgetsHandler exposes owner-scoped CRUD over budget lines.
type BudgetsHandler struct {
	budgets repository.BudgetRepository
}

// NewBudgetsHandler constructs the handler.
func NewBudgetsHandler(budgets repository.BudgetRepository) *BudgetsHandler {
	return &BudgetsHandler{budgets: budgets}
}

// List handles GET /api/v1/budgets.
func (h *BudgetsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	budgets, err := h.budgets.ListByUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	items := make([]dto.BudgetResponse, 0, len(budgets))
	for _, budget := range budgets {
		items = append(items, dto.NewBudgetResponse(budget))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /api/v1/budgets.
func (h *BudgetsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.BudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Category == "" {
		return apperrors.NewValidationError("category and title required", nil)
	}
	if req.Amount < 0 {
		return apperrors.NewValidationError("amount must be non-negative", nil)
	}

	budget := &domain.Budget{
		UserID:   principal.User.ID,
		Category: req.Category,
		Title:    req.Title,
		Amount:   req.Amount,
		Memo:     req.Memo,
	}
	if err := h.budgets.Create(c.Context(), budget); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBudgetResponse(budget)})
}

// Get handles GET /api/v1/budgets/:id.
func (h *BudgetsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	budget, err := h.budgets.GetByID(c.Context(), int64(id), principal.User.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewBudgetResponse(budget)})
}

// Update handles PUT /api/v1/budgets/:id.
func (h *BudgetsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	var req dto.BudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Category == "" {
		return apperrors.NewValidationError("category and title required", nil)
	}

	budget := &domain.Budget{
		ID:       int64(id),
		UserID:   principal.User.ID,
		Category: req.Category,
		Title:    req.Title,
		Amount:   req.Amount,
		Memo:     req.Memo,
	}
	if err := h.budgets.Update(c.Context(), budget); err != nil {
		return apperrors.MapError(err)
	}

	updated, err := h.budgets.GetByID(c.Context(), int64(id), principal.User.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewBudgetResponse(updated)})
}

// Delete handles DELETE /api/v1/budgets/:id.
func (h *BudgetsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	if err := h.budgets.Delete(c.Context(), int64(id), principal.User.ID); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
