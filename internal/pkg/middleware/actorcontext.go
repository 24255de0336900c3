package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	TENANT_ID = "TENANT_ID"
	USER_ID   = "USER_ID"
)

// ActorContextMiddleware resolves the acting tenant and user from the
// gateway-injected headers and stores them in Locals for the staff API.
// Requests without both headers are rejected before reaching a handler.
func ActorContextMiddleware(c *fiber.Ctx) error {
	tenantID, err := strconv.ParseUint(c.Get("X-Tenant-ID"), 10, 32)
	if err != nil || tenantID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Missing or invalid tenant",
		})
	}

	userID, err := strconv.ParseUint(c.Get("X-User-ID"), 10, 32)
	if err != nil || userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Missing or invalid user",
		})
	}

	c.Locals(TENANT_ID, uint(tenantID))
	c.Locals(USER_ID, uint(userID))

	return c.Next()
}

// ActorTenantID returns the tenant stored by ActorContextMiddleware.
func ActorTenantID(c *fiber.Ctx) uint {
	if v, ok := c.Locals(TENANT_ID).(uint); ok {
		return v
	}
	return 0
}

// ActorUserID returns the user stored by ActorContextMiddleware.
func ActorUserID(c *fiber.Ctx) uint {
	if v, ok := c.Locals(USER_ID).(uint); ok {
		return v
	}
	return 0
}
