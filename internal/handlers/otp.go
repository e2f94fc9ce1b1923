package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ravichalikanti/Retinal-Analysis/internal/repository"
	"github.com/Ravichalikanti/Retinal-Analysis/internal/utils"
)

// otpValidity is how long an issued code can be verified.
const otpValidity = 5 * time.Minute

// SMSSender dispatches an OTP code to a phone number.
type SMSSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// OTPHandler manages issuance and verification of one-time codes.
type OTPHandler struct {
	users repository.UserRepository
	sms   SMSSender
}

// NewOTPHandler constructs an OTPHandler.
func NewOTPHandler(users repository.UserRepository, sms SMSSender) *OTPHandler {
	return &OTPHandler{users: users, sms: sms}
}

type sendOTPRequest struct {
	Phone flexString `json:"phone"`
}

// SendOTP issues a fresh code for a registered phone and dispatches it via
// the SMS gateway. The code is persisted before dispatch and stays valid
// even when delivery fails, so a user could still supply it through another
// channel.
func (h *OTPHandler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone is required")
	}

	user, err := h.users.FindByPhone(c.Context(), string(req.Phone))
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(fiber.Map{"message": "Phone not registered"})
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate code")
	}

	expiry := time.Now().Add(otpValidity).UnixMilli()
	user.OTP = code
	user.OTPExpiry = &expiry

	if err := h.users.Save(c.Context(), user); err != nil {
		return err
	}

	if err := h.sms.SendOTP(c.Context(), user.Phone, code); err != nil {
		log.Printf("sms dispatch failed for %s: %v", user.Phone, err)
		return c.JSON(fiber.Map{"message": "SMS sending failed"})
	}

	return c.JSON(fiber.Map{"message": "OTP sent successfully"})
}

type verifyOTPRequest struct {
	Phone flexString `json:"phone"`
	OTP   string     `json:"otp"`
}

// VerifyOTP checks the supplied code against the stored one. A successful
// verification leaves the OTP fields untouched, so the code stays usable
// until it expires, is reset, or is replaced by a new issuance.
func (h *OTPHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" || req.OTP == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone and otp are required")
	}

	user, err := h.users.FindByPhone(c.Context(), string(req.Phone))
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(fiber.Map{"message": "User not found"})
	}

	if user.OTP == "" || user.OTP != req.OTP {
		return c.JSON(fiber.Map{"message": "Invalid OTP"})
	}

	if user.OTPExpiry == nil || time.Now().UnixMilli() > *user.OTPExpiry {
		return c.JSON(fiber.Map{"message": "OTP expired"})
	}

	return c.JSON(fiber.Map{"message": "OTP Verified"})
}
