// handlers/transactions.go - Collection transaction endpoints
package handlers

import (
	"vasool/middleware"

	"github.com/gofiber/fiber/v2"
)

type TransactionRequest struct {
	TeamID          uint    `json:"team_id"`
	CollectedAmount float64 `json:"collected_amount"`
	Week            int     `json:"week"`
	Date            string  `json:"date"`
}

// ================== TRANSACTION ENDPOINTS ==================

// AddTransaction records a weekly collection and rolls the due date
// POST /api/teams/transactions
func AddTransaction(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized",
		})
	}

	var req TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.TeamID == 0 {
		return badRequest(c, "Team ID is required")
	}
	if req.CollectedAmount <= 0 {
		return badRequest(c, "Collected amount must be positive")
	}
	if req.Week < 1 {
		return badRequest(c, "Week must be at least 1")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(c, "Date must be in YYYY-MM-DD format")
	}

	result, err := teamService.AddTransaction(req.TeamID, req.CollectedAmount, req.Week, date, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":          true,
		"transaction":      result.Transaction,
		"next_due":         result.NextDue,
		"collected_amount": result.CollectedAmount,
		"balance_week":     result.BalanceWeek,
	})
}

// DeleteTransaction rolls back a recorded collection
// DELETE /api/teams/transactions/:id
func DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid transaction ID")
	}

	result, err := teamService.RemoveTransaction(id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"next_due":         result.NextDue,
		"collected_amount": result.CollectedAmount,
		"balance_week":     result.BalanceWeek,
	})
}

// ListTransactions pages through a team's transactions, newest first
// GET /api/teams/transactions/:teamId?page=&pageSize=
func ListTransactions(c *fiber.Ctx) error {
	teamID, err := parseIDParam(c, "teamId")
	if err != nil {
		return badRequest(c, "Invalid team ID")
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	transactions, total, err := teamService.ListTransactions(teamID, page, pageSize)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"transactions": transactions,
		"total":        total,
		"page":         page,
		"pageSize":     pageSize,
	})
}
