package handlers

import (
	"github.com/bpnlt/tv-planner/app/dto"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// PricingListHandler handles pricing list and channel group HTTP requests
type PricingListHandler struct {
	listFlow  businessflow.PricingListFlow
	groupFlow businessflow.ChannelGroupFlow
	validator *validator.Validate
}

// NewPricingListHandler creates a new pricing list handler
func NewPricingListHandler(listFlow businessflow.PricingListFlow, groupFlow businessflow.ChannelGroupFlow) *PricingListHandler {
	return &PricingListHandler{
		listFlow:  listFlow,
		groupFlow: groupFlow,
		validator: validator.New(),
	}
}

// CreatePricingList handles POST /api/v1/pricing-lists
func (h *PricingListHandler) CreatePricingList(c fiber.Ctx) error {
	var req dto.CreatePricingListRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	result, err := h.listFlow.CreatePricingList(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusCreated, "Pricing list created successfully", result)
}

// DuplicatePricingList handles POST /api/v1/pricing-lists/:id/duplicate
func (h *PricingListHandler) DuplicatePricingList(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.DuplicatePricingListRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.SourceID = id
	result, err := h.listFlow.DuplicatePricingList(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusCreated, "Pricing list duplicated successfully", result)
}

// MigrateLegacyRates handles POST /api/v1/pricing-lists/:id/migrate-legacy
func (h *PricingListHandler) MigrateLegacyRates(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.listFlow.MigrateLegacyRates(requestContext(c), id)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Legacy rates migrated successfully", result)
}

// ListPricingLists handles GET /api/v1/pricing-lists
func (h *PricingListHandler) ListPricingLists(c fiber.Ctx) error {
	result, err := h.listFlow.ListPricingLists(requestContext(c))
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Pricing lists retrieved successfully", result)
}

// GetPricingList handles GET /api/v1/pricing-lists/:id
func (h *PricingListHandler) GetPricingList(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.listFlow.GetPricingList(requestContext(c), id)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Pricing list retrieved successfully", result)
}

// DeletePricingList handles DELETE /api/v1/pricing-lists/:id
func (h *PricingListHandler) DeletePricingList(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	if err := h.listFlow.DeletePricingList(requestContext(c), id); err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Pricing list deleted successfully", nil)
}

// CreateChannelGroup handles POST /api/v1/channel-groups
func (h *PricingListHandler) CreateChannelGroup(c fiber.Ctx) error {
	var req dto.CreateChannelGroupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	result, err := h.groupFlow.CreateChannelGroup(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusCreated, "Channel group created successfully", result)
}

// ListChannelGroups handles GET /api/v1/channel-groups
func (h *PricingListHandler) ListChannelGroups(c fiber.Ctx) error {
	result, err := h.groupFlow.ListChannelGroups(requestContext(c))
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Channel groups retrieved successfully", result)
}

// GetChannelGroup handles GET /api/v1/channel-groups/:id
func (h *PricingListHandler) GetChannelGroup(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.groupFlow.GetChannelGroup(requestContext(c), id)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Channel group retrieved successfully", result)
}

// DeleteChannelGroup handles DELETE /api/v1/channel-groups/:id
func (h *PricingListHandler) DeleteChannelGroup(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	if err := h.groupFlow.DeleteChannelGroup(requestContext(c), id); err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Channel group deleted successfully", nil)
}

// AddChannel handles POST /api/v1/channel-groups/:id/channels
func (h *PricingListHandler) AddChannel(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.CreateChannelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.ChannelGroupID = id
	result, err := h.groupFlow.AddChannel(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusCreated, "Channel added successfully", result)
}

// DeleteChannel handles DELETE /api/v1/channels/:id
func (h *PricingListHandler) DeleteChannel(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	if err := h.groupFlow.DeleteChannel(requestContext(c), id); err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Channel deleted successfully", nil)
}
