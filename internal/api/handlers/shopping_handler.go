package handlers

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/internal/api/presenters"
	"Pantry-Backend/pkg/shopping"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingHandler interface {
		GetEntries(c *fiber.Ctx) error
		AddEntry(c *fiber.Ctx) error
		AddFromSuggestion(c *fiber.Ctx) error
		UpdateStatus(c *fiber.Ctx) error
		DeleteEntry(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		shoppingService shopping.ShoppingService
		validator       *validator.Validate
	}
)

func NewShoppingHandler(shoppingService shopping.ShoppingService, validator *validator.Validate) ShoppingHandler {
	return &shoppingHandler{
		shoppingService: shoppingService,
		validator:       validator,
	}
}

func (h *shoppingHandler) GetEntries(c *fiber.Ctx) error {
	res, err := h.shoppingService.GetEntries(c.Context(), householdID(c), c.Query("status", "all"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetShoppingList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShoppingList)
}

func (h *shoppingHandler) AddEntry(c *fiber.Ctx) error {
	req := new(domain.AddShoppingEntryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddShoppingEntry, err)
	}

	res, err := h.shoppingService.AddEntry(c.Context(), *req, householdID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddShoppingEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddShoppingEntry)
}

func (h *shoppingHandler) AddFromSuggestion(c *fiber.Ctx) error {
	res, err := h.shoppingService.AddFromSuggestion(c.Context(), c.Params("productId"), householdID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddShoppingEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddShoppingEntry)
}

func (h *shoppingHandler) UpdateStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateEntryStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateEntryStatus, err)
	}

	res, err := h.shoppingService.UpdateStatus(c.Context(), c.Params("id"), *req, householdID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateEntryStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateEntryStatus)
}

func (h *shoppingHandler) DeleteEntry(c *fiber.Ctx) error {
	if err := h.shoppingService.DeleteEntry(c.Context(), c.Params("id"), householdID(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteEntry, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteEntry)
}
