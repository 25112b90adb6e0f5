// handlers/reports.go - Collection report endpoints
package handlers

import (
	"vasool/models"
	"vasool/services"

	"github.com/gofiber/fiber/v2"
)

var reportService *services.ReportService

// InitReportHandlers wires the report service into the report
// endpoints.
func InitReportHandlers(svc *services.ReportService) {
	reportService = svc
}

// ================== REPORT ENDPOINTS ==================

// GetRangeReport returns per-weekday collection buckets for a date range
// GET /api/reports?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func GetRangeReport(c *fiber.Ctx) error {
	startRaw := c.Query("startDate")
	endRaw := c.Query("endDate")
	if startRaw == "" || endRaw == "" {
		return badRequest(c, "startDate and endDate are required")
	}

	start, err := parseDate(startRaw)
	if err != nil {
		return badRequest(c, "startDate must be in YYYY-MM-DD format")
	}
	end, err := parseDate(endRaw)
	if err != nil {
		return badRequest(c, "endDate must be in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return badRequest(c, "endDate must not be before startDate")
	}

	report, err := reportService.RangeReport(start, end)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to build report",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"report":  report,
	})
}

// GetDayReport returns every active team collecting on a weekday with
// re-derived collection totals
// GET /api/reports/:day
func GetDayReport(c *fiber.Ctx) error {
	day := c.Params("day")
	if !models.IsValidDay(day) {
		return badRequest(c, "Day must be a valid weekday name")
	}

	report, err := reportService.DayReport(day)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to build report",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"report":  report,
	})
}
