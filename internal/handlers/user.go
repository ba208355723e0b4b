package handlers

import (
	"saudapakka/internal/middleware"
	"saudapakka/internal/services/user"
	"saudapakka/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	profile, err := h.service.Profile(c.Context(), middleware.Principal(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(profile)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var patch user.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.service.UpdateProfile(c.Context(), middleware.Principal(c), patch)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(profile)
}

// UpgradeRole grants seller/broker capability after verified KYC.
func (h *UserHandler) UpgradeRole(c *fiber.Ctx) error {
	var input struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	upgraded, err := h.service.UpgradeRole(c.Context(), middleware.Principal(c), input.Role)
	if err != nil {
		return response.FromError(c, err)
	}

	role := "Seller"
	if input.Role == user.RoleBroker {
		role = "Broker"
	}
	return response.Success(c, "Congratulations! You are now a "+role+".", fiber.Map{
		"is_active_seller": upgraded.IsActiveSeller,
		"is_active_broker": upgraded.IsActiveBroker,
	})
}

// SearchProfiles is the public broker/seller directory.
func (h *UserHandler) SearchProfiles(c *fiber.Ctx) error {
	users, err := h.service.SearchProfiles(c.Context(), c.Query("query"), c.Query("role"))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(users)
}
