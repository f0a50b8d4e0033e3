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

// ListingsHandler exposes owner-scoped CRUD over saved real-estate listings.
type ListingsHandler struct {
	listings repository.ListingRepository
}

// NewListingsHandler constructs the handler.
func NewListingsHandler(listings repository.ListingRepository) *ListingsHandler {
	return &ListingsHandler{listings: listings}
}

// List handles GET /api/v1/listings.
func (h *ListingsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	listings, err := h.listings.ListByUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	items := make([]dto.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		items = append(items, dto.NewListingResponse(listing))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /api/v1/listings.
func (h *ListingsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Address == "" {
		return apperrors.NewValidationError("title and address required", nil)
	}

	listing := &domain.Listing{
		UserID:      principal.User.ID,
		Title:       req.Title,
		Address:     req.Address,
		Deposit:     req.Deposit,
		MonthlyRent: req.MonthlyRent,
		AreaM2:      req.AreaM2,
		Memo:        req.Memo,
	}
	if err := h.listings.Create(c.Context(), listing); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewListingResponse(listing)})
}

// Get handles GET /api/v1/listings/:id.
func (h *ListingsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	listing, err := h.listings.GetByID(c.Context(), int64(id), principal.User.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponse(listing)})
}

// Update handles PUT /api/v1/listings/:id.
func (h *ListingsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	var req dto.ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Address == "" {
		return apperrors.NewValidationError("title and address required", nil)
	}

	listing := &domain.Listing{
		ID:          int64(id),
		UserID:      principal.User.ID,
		Title:       req.Title,
		Address:     req.Address,
		Deposit:     req.Deposit,
		MonthlyRent: req.MonthlyRent,
		AreaM2:      req.AreaM2,
		Memo:        req.Memo,
	}
	if err := h.listings.Update(c.Context(), listing); err != nil {
		return apperrors.MapError(err)
	}

	updated, err := h.listings.GetByID(c.Context(), int64(id), principal.User.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponse(updated)})
}

// Delete handles DELETE /api/v1/listings/:id.
func (h *ListingsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}

	if err := h.listings.Delete(c.Context(), int64(id), principal.User.ID); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
