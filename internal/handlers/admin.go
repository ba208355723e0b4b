package handlers

import (
	"saudapakka/internal/middleware"
	"saudapakka/internal/services/moderation"
	"saudapakka/internal/utils/pagination"
	"saudapakka/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	service moderation.Service
}

func NewAdminHandler(service moderation.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context(), middleware.Principal(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(stats)
}

// ListProperties pages listings by verification status (default PENDING).
func (h *AdminHandler) ListProperties(c *fiber.Ctx) error {
	params := pagination.ParseFromRequest(c)

	views, total, err := h.service.ListByStatus(
		c.Context(), middleware.Principal(c), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return response.FromError(c, err)
	}

	params.Total = total
	return c.JSON(pagination.Response(params, views))
}

// PropertyAction applies an APPROVE or REJECT decision.
func (h *AdminHandler) PropertyAction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid property ID")
	}

	var input struct {
		Action string `json:"action"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	decision, err := h.service.Decide(c.Context(), middleware.Principal(c), id, input.Action, input.Reason)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(decision)
}

// PropertyHistory returns the audit trail for a listing.
func (h *AdminHandler) PropertyHistory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid property ID")
	}

	decisions, err := h.service.History(c.Context(), middleware.Principal(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(decisions)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.ParseFromRequest(c)

	users, total, err := h.service.ListUsers(
		c.Context(), middleware.Principal(c), c.Query("role"), params.Offset, params.Limit)
	if err != nil {
		return response.FromError(c, err)
	}

	params.Total = total
	return c.JSON(pagination.Response(params, users))
}

// UserAction blocks or unblocks an account.
func (h *AdminHandler) UserAction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var input struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.service.SetUserBlocked(c.Context(), middleware.Principal(c), id, input.Action); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "User "+input.Action+" applied.", fiber.Map{
		"user_id": id,
		"action":  input.Action,
	})
}
