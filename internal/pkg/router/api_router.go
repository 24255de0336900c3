package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/orcahub/OrcaHub/app/controllers"
	"github.com/orcahub/OrcaHub/internal/pkg/middleware"
)

// ApiRouter wires the staff-facing budget API. Every route requires an
// actor resolved from the gateway headers.
type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1", middleware.ActorContextMiddleware)
	v1.Post("/budgets", controllers.HandleCreateBudget)
	v1.Get("/budgets/:id", controllers.HandleGetBudget)
	v1.Post("/budgets/:id/services", controllers.HandleAddService)
	v1.Post("/budgets/:id/status", controllers.HandleChangeBudgetStatus)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
