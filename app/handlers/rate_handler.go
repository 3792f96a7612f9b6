package handlers

import (
	"github.com/bpnlt/tv-planner/app/dto"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// RateHandler handles rate card HTTP requests
type RateHandler struct {
	rateFlow  businessflow.RateCardFlow
	validator *validator.Validate
}

// NewRateHandler creates a new rate handler
func NewRateHandler(rateFlow businessflow.RateCardFlow) *RateHandler {
	return &RateHandler{
		rateFlow:  rateFlow,
		validator: validator.New(),
	}
}

// UpsertLegacyRate handles PUT /api/v1/channel-groups/:id/rates
func (h *RateHandler) UpsertLegacyRate(c fiber.Ctx) error {
	groupID, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.UpsertLegacyRateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.ChannelGroupID = groupID
	result, err := h.rateFlow.UpsertLegacyRate(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Rate saved successfully", result)
}

// UpsertListRate handles PUT /api/v1/pricing-lists/:id/rates
func (h *RateHandler) UpsertListRate(c fiber.Ctx) error {
	listID, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.UpsertListRateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.PricingListID = listID
	result, err := h.rateFlow.UpsertListRate(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Rate saved successfully", result)
}

// ListLegacyRates handles GET /api/v1/channel-groups/:id/rates
func (h *RateHandler) ListLegacyRates(c fiber.Ctx) error {
	groupID, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.rateFlow.ListLegacyRates(requestContext(c), &groupID)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Rates retrieved successfully", result)
}

// ListRatesByPricingList handles GET /api/v1/pricing-lists/:id/rates
func (h *RateHandler) ListRatesByPricingList(c fiber.Ctx) error {
	listID, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.rateFlow.ListRatesByPricingList(requestContext(c), listID)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Rates retrieved successfully", result)
}

// ListTargetGroups handles GET /api/v1/pricing-lists/:id/channel-groups/:groupId/target-groups
func (h *RateHandler) ListTargetGroups(c fiber.Ctx) error {
	listID, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	groupID, err := paramUint(c, "groupId")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.rateFlow.ListTargetGroups(requestContext(c), listID, groupID)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Target groups retrieved successfully", result)
}

// DeleteRate handles DELETE /api/v1/rates/:id
func (h *RateHandler) DeleteRate(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	if err := h.rateFlow.DeleteRate(requestContext(c), id); err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Rate deleted successfully", nil)
}
