package handlers

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/internal/api/presenters"
	"Pantry-Backend/pkg/inventory"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	InventoryHandler interface {
		AddBatch(c *fiber.Ctx) error
		GetBatches(c *fiber.Ctx) error
		Consume(c *fiber.Ctx) error
		MoveBatch(c *fiber.Ctx) error
		DeleteBatch(c *fiber.Ctx) error
		ReceiveEntry(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		validator        *validator.Validate
	}
)

func NewInventoryHandler(inventoryService inventory.InventoryService, validator *validator.Validate) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		validator:        validator,
	}
}

func (h *inventoryHandler) AddBatch(c *fiber.Ctx) error {
	req := new(domain.AddBatchRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddBatch, err)
	}

	res, err := h.inventoryService.AddBatch(c.Context(), *req, householdID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddBatch, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddBatch)
}

func (h *inventoryHandler) GetBatches(c *fiber.Ctx) error {
	res, err := h.inventoryService.GetBatches(c.Context(), c.Params("id"), householdID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetBatches, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBatches)
}

func (h *inventoryHandler) Consume(c *fiber.Ctx) error {
	req := new(domain.ConsumeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.inventoryService.Consume(c.Context(), c.Params("id"), *req, householdID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedConsume, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConsume)
}

func (h *inventoryHandler) MoveBatch(c *fiber.Ctx) error {
	req := new(domain.MoveBatchRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMoveBatch, err)
	}

	res, err := h.inventoryService.MoveBatch(c.Context(), c.Params("id"), *req, householdID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedMoveBatch, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMoveBatch)
}

func (h *inventoryHandler) DeleteBatch(c *fiber.Ctx) error {
	res, err := h.inventoryService.DeleteBatch(c.Context(), c.Params("id"), householdID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteBatch, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteBatch)
}

func (h *inventoryHandler) ReceiveEntry(c *fiber.Ctx) error {
	req := new(domain.ReceiveEntryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReceiveEntry, err)
	}

	res, err := h.inventoryService.ReceiveEntry(c.Context(), c.Params("id"), *req, householdID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedReceiveEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessReceiveEntry)
}
