// handlers/teams.go - Team endpoints
package handlers

import (
	"errors"
	"strconv"
	"time"

	"vasool/middleware"
	"vasool/models"
	"vasool/schedule"
	"vasool/services"

	"github.com/gofiber/fiber/v2"
)

var teamService *services.TeamService

// InitTeamHandlers wires the team service into the team, member and
// transaction endpoints.
func InitTeamHandlers(svc *services.TeamService) {
	teamService = svc
}

type TeamRequest struct {
	TeamCode    int     `json:"team_code"`
	Address     string  `json:"address"`
	Date        string  `json:"date"`
	Day         string  `json:"day"`
	TotalAmount float64 `json:"total_amount"`
	TotalWeek   int     `json:"total_week"`
}

type TeamUpdateRequest struct {
	TeamCode    *int     `json:"team_code"`
	Address     *string  `json:"address"`
	Date        *string  `json:"date"`
	Day         *string  `json:"day"`
	TotalAmount *float64 `json:"total_amount"`
	TotalWeek   *int     `json:"total_week"`
}

// ================== TEAM CRUD ENDPOINTS ==================

// CreateTeam registers a new collection team
// POST /api/teams
func CreateTeam(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized",
		})
	}

	var req TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.TeamCode <= 0 {
		return badRequest(c, "Team code must be a positive number")
	}
	if req.Address == "" {
		return badRequest(c, "Address is required")
	}
	if !models.IsValidDay(req.Day) {
		return badRequest(c, "Day must be a valid weekday name")
	}
	if req.TotalAmount <= 0 {
		return badRequest(c, "Total amount must be positive")
	}
	if req.TotalWeek < 1 {
		return badRequest(c, "Total week must be at least 1")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(c, "Date must be in YYYY-MM-DD format")
	}
	if !dateMatchesDay(date, req.Day) {
		return badRequest(c, "Date does not fall on the given day")
	}

	team, err := teamService.CreateTeam(services.TeamInput{
		TeamCode:    req.TeamCode,
		Address:     req.Address,
		Date:        date,
		Day:         req.Day,
		TotalAmount: req.TotalAmount,
		TotalWeek:   req.TotalWeek,
	}, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// GetTeamsByDay lists active teams collecting on a weekday
// GET /api/teams/:day?search=&page=&pageSize=
func GetTeamsByDay(c *fiber.Ctx) error {
	day := c.Params("day")
	if !models.IsValidDay(day) {
		return badRequest(c, "Day must be a valid weekday name")
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	teams, total, err := teamService.ListTeams(day, c.Query("search"), page, pageSize)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to list teams",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"teams":    teams,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// GetTeam returns a single team
// GET /api/teams/single/:id
func GetTeam(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team ID")
	}

	team, err := teamService.GetTeam(id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// EditTeam applies a partial update and recomputes the schedule
// PUT /api/teams/:id
func EditTeam(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized",
		})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team ID")
	}

	var req TeamUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// The code+day pair identifies a route slot, so the two can only be
	// reassigned together.
	if (req.TeamCode == nil) != (req.Day == nil) {
		return badRequest(c, "Team code and day must be changed together")
	}

	upd := services.TeamUpdate{
		TeamCode:    req.TeamCode,
		Address:     req.Address,
		Day:         req.Day,
		TotalAmount: req.TotalAmount,
		TotalWeek:   req.TotalWeek,
	}

	if req.TeamCode != nil && *req.TeamCode <= 0 {
		return badRequest(c, "Team code must be a positive number")
	}
	if req.Day != nil && !models.IsValidDay(*req.Day) {
		return badRequest(c, "Day must be a valid weekday name")
	}
	if req.TotalAmount != nil && *req.TotalAmount <= 0 {
		return badRequest(c, "Total amount must be positive")
	}
	if req.TotalWeek != nil && *req.TotalWeek < 1 {
		return badRequest(c, "Total week must be at least 1")
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return badRequest(c, "Date must be in YYYY-MM-DD format")
		}
		upd.Date = &date
	}

	// Validate that the effective start date falls on the effective day.
	if upd.Date != nil || upd.Day != nil {
		current, err := teamService.GetTeam(id)
		if err != nil {
			return serviceError(c, err)
		}
		date := current.Date
		day := current.Day
		if upd.Date != nil {
			date = *upd.Date
		}
		if upd.Day != nil {
			day = *upd.Day
		}
		if !dateMatchesDay(date, day) {
			return badRequest(c, "Date does not fall on the given day")
		}
	}

	team, err := teamService.EditTeam(id, upd, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// DeleteTeam retires a team. Teams are never hard-deleted.
// DELETE /api/teams/:id
func DeleteTeam(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team ID")
	}

	if err := teamService.DeactivateTeam(id); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Team retired",
	})
}

// Helper functions

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func dateMatchesDay(date time.Time, day string) bool {
	wd, err := schedule.ParseDay(day)
	if err != nil {
		return false
	}
	return date.Weekday() == wd
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(400).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// serviceError maps service errors onto HTTP statuses. Every domain
// rule violation, not-found included, is a 400 from the client's view.
func serviceError(c *fiber.Ctx, err error) error {
	for _, sentinel := range []error{
		services.ErrTeamExists,
		services.ErrTeamNotFound,
		services.ErrTeamInactive,
		services.ErrOverCollection,
		services.ErrAmountBelowCollected,
		services.ErrWeekBelowRecorded,
		services.ErrTransactionNotFound,
		services.ErrMemberNotFound,
		services.ErrAadharTaken,
	} {
		if errors.Is(err, sentinel) {
			return badRequest(c, err.Error())
		}
	}
	return c.Status(500).JSON(fiber.Map{
		"success": false,
		"error":   "Internal server error",
	})
}
