package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/orcahub/OrcaHub/app/repository"
	"github.com/orcahub/OrcaHub/internal/pkg/database"
	"github.com/orcahub/OrcaHub/internal/pkg/statuscache"
)

// HandleBudgetStatusPublic returns the status of a budget through its
// public id, for the page behind the confirmation link. The cache answers
// most polls without touching the database.
func HandleBudgetStatusPublic(c *fiber.Ctx) error {
	publicID := c.Params("publicID")

	if status, err := statuscache.GetBudgetStatus(publicID); err == nil {
		return c.JSON(fiber.Map{"status": status, "status_name": status.Name()})
	}

	repos := repository.GetGlobalFactory(database.GetDB())
	budget, err := repos.Budget.GetByPublicID(publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Budget not found"})
		}
		return budgetErrorResponse(c, err)
	}

	if cacheErr := statuscache.SetBudgetStatus(publicID, budget.Status); cacheErr != nil {
		log.Printf("Could not cache budget status for %s: %v", publicID, cacheErr)
	}

	return c.JSON(fiber.Map{"status": budget.Status, "status_name": budget.Status.Name()})
}

type confirmRequest struct {
	Token    string `json:"token"`
	Decision string `json:"decision"`
}

// HandleConfirmBudget records the customer's decision from the mailed
// confirmation link.
func HandleConfirmBudget(c *fiber.Ctx) error {
	publicID := c.Params("publicID")

	var req confirmRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing token"})
	}

	var approve bool
	switch req.Decision {
	case "approve":
		approve = true
	case "reject":
		approve = false
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Decision must be approve or reject"})
	}

	outcome, err := getCoordinator().ConfirmBudget(c.Context(), publicID, req.Token, approve)
	if err != nil {
		return budgetErrorResponse(c, err)
	}

	if cacheErr := statuscache.SetBudgetStatus(publicID, outcome.NewStatus); cacheErr != nil {
		log.Printf("Could not cache budget status for %s: %v", publicID, cacheErr)
	}

	return c.JSON(fiber.Map{
		"status":      outcome.NewStatus,
		"status_name": outcome.NewStatusName,
	})
}

type refreshTokenRequest struct {
	Token string `json:"token"`
}

// HandleRefreshBudgetToken issues a replacement confirmation link after
// the mailed one expired.
func HandleRefreshBudgetToken(c *fiber.Ctx) error {
	publicID := c.Params("publicID")

	var req refreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing token"})
	}

	if err := getCoordinator().RefreshBudgetToken(c.Context(), publicID, req.Token); err != nil {
		return budgetErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "A new confirmation link was sent"})
}
