package handlers

import (
	"saudapakka/internal/middleware"
	"saudapakka/internal/services/auth"
	"saudapakka/internal/utils/response"
	"saudapakka/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// RequestOTP starts the passwordless login flow.
func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.service.RequestOTP(c.Context(), input.Email); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "OTP sent successfully! Check your inbox.", nil)
}

// VerifyOTP exchanges a valid code for a token pair.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
		OTP   string `json:"otp" validate:"required,len=6"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, pair, err := h.service.VerifyOTP(c.Context(), input.Email, input.OTP)
	if err != nil {
		return response.FromError(c, err)
	}

	return c.JSON(fiber.Map{
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user": fiber.Map{
			"id":               user.ID,
			"email":            user.Email,
			"is_active_seller": user.IsActiveSeller,
			"is_active_broker": user.IsActiveBroker,
		},
	})
}

// AdminLogin is password-based login for seeded staff accounts.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, pair, err := h.service.AdminLogin(c.Context(), input.Email, input.Password)
	if err != nil {
		return response.FromError(c, err)
	}

	return c.JSON(fiber.Map{
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user": fiber.Map{
			"id":           user.ID,
			"email":        user.Email,
			"is_staff":     user.IsStaff,
			"is_superuser": user.IsSuperuser,
		},
	})
}

// RefreshToken issues a fresh token pair from a refresh token.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input struct {
		Refresh string `json:"refresh" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	pair, err := h.service.RefreshTokens(c.Context(), input.Refresh)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, response.KindUnauthenticated, err.Error())
	}
	return c.JSON(pair)
}

// Logout invalidates every token issued to the caller.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	p := middleware.Principal(c)
	if !p.Authenticated {
		return response.Unauthorized(c)
	}
	if err := h.service.Logout(c.Context(), p.ID); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Logged out", nil)
}
