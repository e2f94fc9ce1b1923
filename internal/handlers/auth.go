package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Ravichalikanti/Retinal-Analysis/internal/models"
	"github.com/Ravichalikanti/Retinal-Analysis/internal/repository"
	"github.com/Ravichalikanti/Retinal-Analysis/internal/utils"
)

// AuthHandler bundles dependencies for signup and login endpoints.
type AuthHandler struct {
	users repository.UserRepository
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users repository.UserRepository) *AuthHandler {
	return &AuthHandler{users: users}
}

type signupRequest struct {
	Name   string     `json:"name"`
	UserID string     `json:"userid"`
	Pwd    string     `json:"pwd"`
	Email  string     `json:"email"`
	Phone  flexString `json:"phone"`
}

// Signup creates a new user account. A taken userid is reported as a soft
// message, not a protocol error.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.UserID == "" || req.Pwd == "" || req.Phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	existing, err := h.users.FindByUserID(c.Context(), req.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return c.JSON(fiber.Map{"msg": "User already exists"})
	}

	hash, err := utils.HashPassword(req.Pwd)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	user := models.User{
		Name:   req.Name,
		UserID: req.UserID,
		Pwd:    hash,
		Email:  req.Email,
		Phone:  string(req.Phone),
	}

	if err := h.users.Create(c.Context(), &user); err != nil {
		// The unique index catches signups that raced past the read above.
		if errors.Is(err, repository.ErrDuplicateUserID) {
			return c.JSON(fiber.Map{"msg": "User already exists"})
		}
		return err
	}

	return c.JSON(fiber.Map{"msg": "Signup Successful"})
}

type loginRequest struct {
	UserID   string `json:"userid"`
	Password string `json:"password"`
}

// Login authenticates an existing user and returns a sanitized projection of
// the record. The password hash and OTP fields never leave the store.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.UserID == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	user, err := h.users.FindByUserID(c.Context(), req.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(fiber.Map{"msg": "User not found"})
	}

	if !utils.CheckPassword(user.Pwd, req.Password) {
		return c.JSON(fiber.Map{"msg": "Wrong Password"})
	}

	return c.JSON(fiber.Map{
		"msg": "Login Successful",
		"user": fiber.Map{
			"name":   user.Name,
			"userid": user.UserID,
			"email":  user.Email,
			"phone":  user.Phone,
		},
	})
}
