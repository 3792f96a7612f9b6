package handlers

import (
	"github.com/bpnlt/tv-planner/app/dto"
	"github.com/bpnlt/tv-planner/app/middleware"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// WaveItemHandler handles wave item pricing HTTP requests
type WaveItemHandler struct {
	itemFlow  businessflow.WaveItemFlow
	validator *validator.Validate
}

// NewWaveItemHandler creates a new wave item handler
func NewWaveItemHandler(itemFlow businessflow.WaveItemFlow) *WaveItemHandler {
	return &WaveItemHandler{
		itemFlow:  itemFlow,
		validator: validator.New(),
	}
}

// CreateWaveItem handles POST /api/v1/waves/:id/items
func (h *WaveItemHandler) CreateWaveItem(c fiber.Ctx) error {
	waveID, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.CreateWaveItemRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.WaveID = waveID
	result, err := h.itemFlow.CreateWaveItem(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	middleware.CountItemPriced()
	return successResponse(c, fiber.StatusCreated, "Wave item created successfully", result)
}

// UpdateWaveItem handles PATCH /api/v1/wave-items/:id
func (h *WaveItemHandler) UpdateWaveItem(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var patch dto.WaveItemPatch
	if err := c.Bind().JSON(&patch); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&patch); err != nil {
		return validationErrorResponse(c, err)
	}
	patch.ID = id
	result, err := h.itemFlow.UpdateWaveItem(requestContext(c), &patch)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	if patch.TouchesPricing() {
		middleware.CountItemPriced()
	}
	return successResponse(c, fiber.StatusOK, "Wave item updated successfully", result)
}

// GetWaveItem handles GET /api/v1/wave-items/:id
func (h *WaveItemHandler) GetWaveItem(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.itemFlow.GetWaveItem(requestContext(c), id)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Wave item retrieved successfully", result)
}

// ListWaveItems handles GET /api/v1/waves/:id/items
func (h *WaveItemHandler) ListWaveItems(c fiber.Ctx) error {
	waveID, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.itemFlow.ListWaveItems(requestContext(c), waveID)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Wave items retrieved successfully", result)
}

// DeleteWaveItem handles DELETE /api/v1/wave-items/:id
func (h *WaveItemHandler) DeleteWaveItem(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	if err := h.itemFlow.DeleteWaveItem(requestContext(c), id); err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Wave item deleted successfully", nil)
}
