package handlers

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/internal/middleware"
	"errors"

	"github.com/gofiber/fiber/v2"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrProductNameTaken):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func householdID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.HouseholdKey).(string)
	return id
}
