package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shuaizuo666/Task-System/middleware"
)

// HandleDashboardStats returns the caller's dashboard counts, computed
// fresh on every call.
//
//	@Summary  Dashboard statistics
//	@Produce  json
//	@Success  200 {object} models.DashboardStats
//	@Router   /api/statistics/dashboard [get]
func (h *Handler) HandleDashboardStats(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	stats, err := h.Stats.Dashboard(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
