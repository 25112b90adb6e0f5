// handlers/users.go - User management endpoints
package handlers

import (
	"strconv"

	"vasool/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UserUpdateRequest struct {
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// RegisterUser creates an admin or user account. Admins and the
// superadmin can call this; the role itself comes from the body.
// POST /api/users/register
func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if req.Username == "" || len(req.Password) < 6 {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Username and a password of at least 6 characters required",
		})
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleUser
	}
	if !models.IsValidRole(role) {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Role must be admin or user",
		})
	}

	existing, err := userStore.GetByUsername(req.Username)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to look up user",
		})
	}
	if existing != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Username already taken",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to hash password",
		})
	}

	user := models.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := userStore.Create(&user); err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to create account",
		})
	}

	return c.Status(201).JSON(AuthResponse{
		Success: true,
		User:    toUserInfo(user),
	})
}

// EditUser resets a user's role or password. Superadmin only.
// PUT /api/users/:id
func EditUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid user ID",
		})
	}

	var req UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	user, err := userStore.GetByID(uint(id))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to look up user",
		})
	}
	if user == nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}
	if user.Role == models.RoleSuperAdmin {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Super admin account cannot be modified",
		})
	}

	if req.Role != nil {
		role := models.Role(*req.Role)
		if !models.IsValidRole(role) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Role must be admin or user",
			})
		}
		user.Role = role
	}

	if req.Password != nil {
		if len(*req.Password) < 6 {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Password must be at least 6 characters",
			})
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to hash password",
			})
		}
		user.Password = string(hashedPassword)
	}

	if err := userStore.Update(user); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update user",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    toUserInfo(*user),
	})
}

// DeleteUser removes a user account. Superadmin only.
// DELETE /api/users/:id
func DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid user ID",
		})
	}

	user, err := userStore.GetByID(uint(id))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to look up user",
		})
	}
	if user == nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}
	if user.Role == models.RoleSuperAdmin {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Super admin account cannot be deleted",
		})
	}

	if err := userStore.Delete(uint(id)); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete user",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted",
	})
}

// ListUsers pages through accounts, optionally filtered by username.
// GET /api/users?search=&page=&pageSize=
func ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := userStore.List(c.Query("search"), (page-1)*pageSize, pageSize)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to list users",
		})
	}

	infos := make([]UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, toUserInfo(u))
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"users":    infos,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
