package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mabat-platform/support-service/internal/service"
)

// DashboardHandler serves the admin control-panel aggregates.
type DashboardHandler struct {
	service *service.StatsService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{service: statsService}
}

// Dashboard GET /admin/dashboard.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.service.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}
