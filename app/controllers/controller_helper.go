package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/orcahub/OrcaHub/internal/pkg/budgeting"
	"github.com/orcahub/OrcaHub/internal/pkg/lifecycle"
)

// budgetErrorResponse maps domain errors onto JSON error responses.
func budgetErrorResponse(c *fiber.Ctx, err error) error {
	var invalid *lifecycle.InvalidTransitionError
	var notification *lifecycle.NotificationError

	switch {
	case errors.Is(err, lifecycle.ErrBudgetNotFound), errors.Is(err, budgeting.ErrBudgetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Budget not found"})
	case errors.Is(err, budgeting.ErrCustomerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Customer not found"})
	case errors.Is(err, lifecycle.ErrTokenNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "token_not_found", "message": "Confirmation token not found"})
	case errors.Is(err, lifecycle.ErrTokenExpired):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "token_expired", "message": "Confirmation token expired, request a new link"})
	case errors.Is(err, lifecycle.ErrTokenSuperseded):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "token_superseded", "message": "A new confirmation link was already sent"})
	case errors.Is(err, budgeting.ErrBudgetNotEditable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "budget_not_editable", "message": "Budget already left draft"})
	case errors.As(err, &invalid):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid_transition", "message": invalid.Error()})
	case errors.As(err, &notification):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "notification_failed", "message": "Could not deliver confirmation mail, nothing was changed"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Unexpected error"})
	}
}
