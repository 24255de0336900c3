package controllers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/orcahub/OrcaHub/app/models"
	"github.com/orcahub/OrcaHub/app/repository"
	"github.com/orcahub/OrcaHub/internal/pkg/budgeting"
	"github.com/orcahub/OrcaHub/internal/pkg/database"
	"github.com/orcahub/OrcaHub/internal/pkg/lifecycle"
	"github.com/orcahub/OrcaHub/internal/pkg/middleware"
	"github.com/orcahub/OrcaHub/internal/pkg/statuscache"
)

type createBudgetRequest struct {
	CustomerID uint       `json:"customer_id"`
	DueDate    *time.Time `json:"due_date"`
}

// HandleCreateBudget opens a new draft budget for the acting tenant.
func HandleCreateBudget(c *fiber.Ctx) error {
	var req createBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	budget, err := getBudgetService().CreateBudget(c.Context(), budgeting.CreateBudgetInput{
		TenantID:   middleware.ActorTenantID(c),
		CustomerID: req.CustomerID,
		UserID:     middleware.ActorUserID(c),
		DueDate:    req.DueDate,
	})
	if err != nil {
		return budgetErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(budget)
}

type addServiceRequest struct {
	CategoryID uint       `json:"category_id"`
	Total      float64    `json:"total"`
	DueDate    *time.Time `json:"due_date"`
}

// HandleAddService appends a service line to a draft budget.
func HandleAddService(c *fiber.Ctx) error {
	budgetID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid budget id"})
	}

	var req addServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	service, err := getBudgetService().AddService(c.Context(), budgeting.AddServiceInput{
		TenantID:   middleware.ActorTenantID(c),
		BudgetID:   uint(budgetID),
		CategoryID: req.CategoryID,
		Total:      req.Total,
		DueDate:    req.DueDate,
	})
	if err != nil {
		return budgetErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

// HandleGetBudget returns a budget with its services.
func HandleGetBudget(c *fiber.Ctx) error {
	budgetID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid budget id"})
	}
	tenantID := middleware.ActorTenantID(c)

	repos := repository.GetGlobalFactory(database.GetDB())
	budget, err := repos.Budget.GetByID(uint(budgetID), tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Budget not found"})
		}
		return budgetErrorResponse(c, err)
	}

	services, err := repos.Service.ListByBudget(budget.ID, tenantID)
	if err != nil {
		return budgetErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"budget":      budget,
		"status_name": budget.Status.Name(),
		"services":    services,
	})
}

type changeStatusRequest struct {
	Action string `json:"action"`
}

// HandleChangeBudgetStatus applies a lifecycle action to a budget.
func HandleChangeBudgetStatus(c *fiber.Ctx) error {
	budgetID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid budget id"})
	}

	var req changeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	action, err := models.ParseBudgetStatus(req.Action)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	outcome, err := getCoordinator().ChangeBudgetStatus(c.Context(), lifecycle.ChangeStatusInput{
		TenantID: middleware.ActorTenantID(c),
		UserID:   middleware.ActorUserID(c),
		BudgetID: uint(budgetID),
		Action:   action,
	})
	if err != nil {
		return budgetErrorResponse(c, err)
	}

	if cacheErr := statuscache.SetBudgetStatus(outcome.BudgetPublicID, outcome.NewStatus); cacheErr != nil {
		log.Printf("Could not cache budget status for %s: %v", outcome.BudgetPublicID, cacheErr)
	}

	return c.JSON(fiber.Map{
		"budget_id":        outcome.BudgetID,
		"old_status":       outcome.OldStatus,
		"old_status_name":  outcome.OldStatusName,
		"new_status":       outcome.NewStatus,
		"new_status_name":  outcome.NewStatusName,
		"updated_services": outcome.UpdatedServices,
		"token_issued":     outcome.TokenIssued,
	})
}
