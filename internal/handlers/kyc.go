package handlers

import (
	"errors"

	"saudapakka/internal/middleware"
	"saudapakka/internal/models"
	"saudapakka/internal/repositories"
	"saudapakka/internal/services/kyc"
	"saudapakka/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type KycHandler struct {
	service kyc.Service
}

func NewKycHandler(service kyc.Service) *KycHandler {
	return &KycHandler{service: service}
}

func (h *KycHandler) Submit(c *fiber.Ctx) error {
	var input kyc.SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.service.Submit(c.Context(), middleware.Principal(c), input)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "KYC submitted.",
		"status":  record.Status,
	})
}

func (h *KycHandler) Status(c *fiber.Ctx) error {
	record, err := h.service.Status(c.Context(), middleware.Principal(c))
	if err != nil {
		// No record yet is a normal state, not an error.
		if errors.Is(err, repositories.ErrKycNotFound) {
			return c.JSON(fiber.Map{"status": models.KycStatusNotSubmitted})
		}
		return response.FromError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":       record.Status,
		"submitted_at": record.CreatedAt,
	})
}
