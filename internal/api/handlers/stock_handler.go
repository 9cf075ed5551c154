package handlers

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/internal/api/presenters"
	"Pantry-Backend/pkg/stock"

	"github.com/gofiber/fiber/v2"
)

type (
	StockHandler interface {
		GetStock(c *fiber.Ctx) error
		RefreshStock(c *fiber.Ctx) error
	}

	stockHandler struct {
		stockService stock.StockService
	}
)

func NewStockHandler(stockService stock.StockService) StockHandler {
	return &stockHandler{
		stockService: stockService,
	}
}

func (h *stockHandler) GetStock(c *fiber.Ctx) error {
	res, err := h.stockService.Recompute(c.Context(), householdID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetStock, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStock)
}

// RefreshStock is the hook for writers outside this service that changed the
// ledger directly.
func (h *stockHandler) RefreshStock(c *fiber.Ctx) error {
	res, err := h.stockService.Refresh(c.Context(), householdID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRefreshStock, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRefreshStock)
}
