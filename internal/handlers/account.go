package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ravichalikanti/Retinal-Analysis/internal/repository"
	"github.com/Ravichalikanti/Retinal-Analysis/internal/utils"
)

// AccountHandler manages profile updates and OTP-driven password resets.
type AccountHandler struct {
	users repository.UserRepository
}

// NewAccountHandler constructs an AccountHandler.
func NewAccountHandler(users repository.UserRepository) *AccountHandler {
	return &AccountHandler{users: users}
}

type updateProfileRequest struct {
	UserID   string     `json:"userid"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Phone    flexString `json:"phone"`
	Password string     `json:"password"`
}

// UpdateProfile overwrites name, email, and phone unconditionally. The
// password hash is rewritten only when a non-blank password is supplied.
func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.UserID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userid is required")
	}

	user, err := h.users.FindByUserID(c.Context(), req.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Phone = string(req.Phone)

	if strings.TrimSpace(req.Password) != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
		}
		user.Pwd = hash
	}

	if err := h.users.Save(c.Context(), user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Profile updated"})
}

type resetPasswordRequest struct {
	Phone    flexString `json:"phone"`
	Password string     `json:"password"`
}

// ResetPassword rewrites the password hash for the record matching the phone
// and clears any outstanding OTP state. It does not require that an OTP was
// verified first; the phone lookup is the only gate.
func (h *AccountHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone and password are required")
	}

	user, err := h.users.FindByPhone(c.Context(), string(req.Phone))
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(fiber.Map{"message": "User not found"})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	user.Pwd = hash
	user.OTP = ""
	user.OTPExpiry = nil

	if err := h.users.Save(c.Context(), user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Password reset successful"})
}
