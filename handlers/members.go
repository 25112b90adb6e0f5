// handlers/members.go - Team member endpoints
package handlers

import (
	"vasool/middleware"
	"vasool/services"

	"github.com/gofiber/fiber/v2"
)

type MemberRequest struct {
	TeamID       uint    `json:"team_id"`
	Name         string  `json:"name"`
	Caretaker    string  `json:"caretaker"`
	AadharNumber string  `json:"aadhar_number"`
	Photo        *string `json:"photo"`
}

type MemberUpdateRequest struct {
	Name         *string `json:"name"`
	Caretaker    *string `json:"caretaker"`
	AadharNumber *string `json:"aadhar_number"`
	Photo        *string `json:"photo"`
}

// ================== MEMBER ENDPOINTS ==================

// AddMember attaches a member to an active team
// POST /api/teams/members
func AddMember(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized",
		})
	}

	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.TeamID == 0 {
		return badRequest(c, "Team ID is required")
	}
	if req.Name == "" {
		return badRequest(c, "Name is required")
	}
	if req.Caretaker == "" {
		return badRequest(c, "Caretaker is required")
	}
	if !validAadhar(req.AadharNumber) {
		return badRequest(c, "Aadhar number must be 12 digits")
	}

	member, err := teamService.AddMember(services.MemberInput{
		TeamID:       req.TeamID,
		Name:         req.Name,
		Caretaker:    req.Caretaker,
		AadharNumber: req.AadharNumber,
		Photo:        req.Photo,
	}, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"member":  member,
	})
}

// EditMember applies a partial update to a member
// PUT /api/teams/members/:id
func EditMember(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized",
		})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid member ID")
	}

	var req MemberUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.AadharNumber != nil && !validAadhar(*req.AadharNumber) {
		return badRequest(c, "Aadhar number must be 12 digits")
	}

	member, err := teamService.EditMember(id, services.MemberUpdate{
		Name:         req.Name,
		Caretaker:    req.Caretaker,
		AadharNumber: req.AadharNumber,
		Photo:        req.Photo,
	}, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"member":  member,
	})
}

// DeleteMember removes a member from its team
// DELETE /api/teams/members/:id
func DeleteMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid member ID")
	}

	if err := teamService.DeleteMember(id); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Member deleted",
	})
}

// ListMembers pages through a team's members
// GET /api/teams/members/:id?search=&page=&pageSize=
func ListMembers(c *fiber.Ctx) error {
	teamID, err := parseIDParam(c, "id")
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

	members, total, err := teamService.ListMembers(teamID, c.Query("search"), page, pageSize)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"members":  members,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func validAadhar(aadhar string) bool {
	if len(aadhar) != 12 {
		return false
	}
	for _, r := range aadhar {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
