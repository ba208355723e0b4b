package handlers

import (
	"strconv"

	"saudapakka/internal/middleware"
	"saudapakka/internal/services/property"
	"saudapakka/internal/utils/response"
	"saudapakka/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PropertyHandler struct {
	service property.Service
}

func NewPropertyHandler(service property.Service) *PropertyHandler {
	return &PropertyHandler{service: service}
}

func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var input property.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	view, err := h.service.Create(c.Context(), middleware.Principal(c), input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Property submitted for review", view)
}

// List is visibility-scoped: guests see verified listings, users
// additionally see their own, staff see everything.
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	filter := property.Filter{
		PropertyType: c.Query("property_type"),
		ListingType:  c.Query("listing_type"),
		Search:       c.Query("search"),
		Ordering:     c.Query("ordering"),
	}
	if raw := c.Query("price__gte"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "price__gte must be a number")
		}
		filter.PriceGTE = &v
	}
	if raw := c.Query("price__lte"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "price__lte must be a number")
		}
		filter.PriceLTE = &v
	}

	views, err := h.service.List(c.Context(), middleware.Principal(c), filter)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(views)
}

func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}

	view, err := h.service.Get(c.Context(), middleware.Principal(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(view)
}

func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}

	var input property.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	view, err := h.service.Update(c.Context(), middleware.Principal(c), id, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Property updated", view)
}

func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}

	if err := h.service.Delete(c.Context(), middleware.Principal(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Property deleted", nil)
}

// ToggleSave bookmarks the listing or removes the bookmark; 201 on
// save, 200 on removal.
func (h *PropertyHandler) ToggleSave(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}

	saved, err := h.service.ToggleSave(c.Context(), middleware.Principal(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	if saved {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Property saved"})
	}
	return c.JSON(fiber.Map{"message": "Property removed from saved"})
}

// RecordView refreshes the caller's view history and returns the
// detail view.
func (h *PropertyHandler) RecordView(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}

	view, err := h.service.RecordView(c.Context(), middleware.Principal(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(view)
}

func (h *PropertyHandler) MySaved(c *fiber.Ctx) error {
	views, err := h.service.MySaved(c.Context(), middleware.Principal(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(views)
}

func (h *PropertyHandler) MyRecent(c *fiber.Ctx) error {
	views, err := h.service.MyRecent(c.Context(), middleware.Principal(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(views)
}
