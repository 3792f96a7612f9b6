package handlers

import (
	"github.com/bpnlt/tv-planner/app/dto"
	"github.com/bpnlt/tv-planner/app/middleware"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// DiscountHandler handles discount ledger HTTP requests
type DiscountHandler struct {
	discountFlow businessflow.DiscountFlow
	validator    *validator.Validate
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discountFlow businessflow.DiscountFlow) *DiscountHandler {
	return &DiscountHandler{
		discountFlow: discountFlow,
		validator:    validator.New(),
	}
}

// AddDiscount handles POST /api/v1/discounts
func (h *DiscountHandler) AddDiscount(c fiber.Ctx) error {
	var req dto.AddDiscountRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	result, err := h.discountFlow.AddDiscount(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusCreated, "Discount added successfully", result)
}

// DeleteDiscount handles DELETE /api/v1/discounts/:id
func (h *DiscountHandler) DeleteDiscount(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	if err := h.discountFlow.DeleteDiscount(requestContext(c), id); err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Discount deleted successfully", nil)
}

// ListWaveDiscounts handles GET /api/v1/waves/:id/discounts
func (h *DiscountHandler) ListWaveDiscounts(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.discountFlow.ListWaveDiscounts(requestContext(c), id)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Discounts retrieved successfully", result)
}

// ListCampaignDiscounts handles GET /api/v1/campaigns/:id/discounts
func (h *DiscountHandler) ListCampaignDiscounts(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.discountFlow.ListCampaignDiscounts(requestContext(c), id)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Discounts retrieved successfully", result)
}

// WaveTotal handles GET /api/v1/waves/:id/total
func (h *DiscountHandler) WaveTotal(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.discountFlow.ComputeWaveTotal(requestContext(c), id)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Wave total computed successfully", result)
}

// RecalculateWave handles POST /api/v1/waves/:id/recalculate
func (h *DiscountHandler) RecalculateWave(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	if err := h.discountFlow.RecalculateWaveItemPrices(requestContext(c), id); err != nil {
		return businessErrorResponse(c, err)
	}
	middleware.CountItemPriced()
	return successResponse(c, fiber.StatusOK, "Wave prices recalculated successfully", nil)
}
