package controller

import (
	"learner-account-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type HealthController struct {
	sessions func() int
}

func NewHealthController(activeSessions func() int) *HealthController {
	return &HealthController{sessions: activeSessions}
}

func (c *HealthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *HealthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("ok", map[string]int{
		"active_delete_flows": c.sessions(),
	}))
}
