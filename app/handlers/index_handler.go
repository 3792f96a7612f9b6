package handlers

import (
	"strconv"

	"github.com/bpnlt/tv-planner/app/dto"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// IndexHandler handles index administration HTTP requests
type IndexHandler struct {
	indexFlow businessflow.IndexFlow
	validator *validator.Validate
}

// NewIndexHandler creates a new index handler
func NewIndexHandler(indexFlow businessflow.IndexFlow) *IndexHandler {
	return &IndexHandler{
		indexFlow: indexFlow,
		validator: validator.New(),
	}
}

// UpsertDurationIndex handles PUT /api/v1/channel-groups/:id/duration-indices
func (h *IndexHandler) UpsertDurationIndex(c fiber.Ctx) error {
	groupID, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.UpsertDurationIndexRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.ChannelGroupID = groupID
	result, err := h.indexFlow.UpsertDurationIndex(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Duration index saved successfully", result)
}

// DeleteDurationIndex handles DELETE /api/v1/channel-groups/:id/duration-indices/:seconds
func (h *IndexHandler) DeleteDurationIndex(c fiber.Ctx) error {
	groupID, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	seconds, err := strconv.Atoi(c.Params("seconds"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid duration", "INVALID_REQUEST", nil)
	}
	if err := h.indexFlow.DeleteDurationIndex(requestContext(c), groupID, seconds); err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Duration index deleted successfully", nil)
}

// ListDurationIndices handles GET /api/v1/duration-indices
func (h *IndexHandler) ListDurationIndices(c fiber.Ctx) error {
	result, err := h.indexFlow.ListDurationIndices(requestContext(c))
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Duration indices retrieved successfully", result)
}

// UpsertSeasonalIndex handles PUT /api/v1/channel-groups/:id/seasonal-indices
func (h *IndexHandler) UpsertSeasonalIndex(c fiber.Ctx) error {
	groupID, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.UpsertSeasonalIndexRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.ChannelGroupID = groupID
	result, err := h.indexFlow.UpsertSeasonalIndex(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Seasonal index saved successfully", result)
}

// ListSeasonalIndices handles GET /api/v1/seasonal-indices
func (h *IndexHandler) ListSeasonalIndices(c fiber.Ctx) error {
	result, err := h.indexFlow.ListSeasonalIndices(requestContext(c))
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Seasonal indices retrieved successfully", result)
}

// UpsertPositionIndex handles PUT /api/v1/channel-groups/:id/position-indices
func (h *IndexHandler) UpsertPositionIndex(c fiber.Ctx) error {
	groupID, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.UpsertPositionIndexRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.ChannelGroupID = groupID
	result, err := h.indexFlow.UpsertPositionIndex(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Position index saved successfully", result)
}

// ListPositionIndices handles GET /api/v1/position-indices
func (h *IndexHandler) ListPositionIndices(c fiber.Ctx) error {
	result, err := h.indexFlow.ListPositionIndices(requestContext(c))
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Position indices retrieved successfully", result)
}
