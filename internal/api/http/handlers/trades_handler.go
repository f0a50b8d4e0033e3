package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marryplan/marryplan-server/internal/service"
)

// TradesHandler exposes the apartment-trade-price lookup.
type TradesHandler struct {
	trades *service.TradePriceService
}

// NewTradesHandler constructs the handler.
func NewTradesHandler(trades *service.TradePriceService) *TradesHandler {
	return &TradesHandler{trades: trades}
}

// Lookup handles GET /api/v1/trades?region_code=11110&deal_month=202605.
func (h *TradesHandler) Lookup(c *fiber.Ctx) error {
	trades, err := h.trades.Lookup(c.Context(), c.Query("region_code"), c.Query("deal_month"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": trades})
}
