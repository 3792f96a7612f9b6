package handlers

import (
	"strconv"

	"github.com/bpnlt/tv-planner/app/dto"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CampaignHandler handles campaign, wave and TVC HTTP requests
type CampaignHandler struct {
	campaignFlow businessflow.CampaignFlow
	validator    *validator.Validate
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignFlow businessflow.CampaignFlow) *CampaignHandler {
	return &CampaignHandler{
		campaignFlow: campaignFlow,
		validator:    validator.New(),
	}
}

// CreateCampaign handles POST /api/v1/campaigns
func (h *CampaignHandler) CreateCampaign(c fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	result, err := h.campaignFlow.CreateCampaign(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusCreated, "Campaign created successfully", result)
}

// UpdateCampaign handles PATCH /api/v1/campaigns/:id
func (h *CampaignHandler) UpdateCampaign(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.UpdateCampaignRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.ID = id
	result, err := h.campaignFlow.UpdateCampaign(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Campaign updated successfully", result)
}

// GetCampaign handles GET /api/v1/campaigns/:uuid
func (h *CampaignHandler) GetCampaign(c fiber.Ctx) error {
	result, err := h.campaignFlow.GetCampaign(requestContext(c), c.Params("uuid"))
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Campaign retrieved successfully", result)
}

// ListCampaigns handles GET /api/v1/campaigns
func (h *CampaignHandler) ListCampaigns(c fiber.Ctx) error {
	result, err := h.campaignFlow.ListCampaigns(requestContext(c))
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Campaigns retrieved successfully", result)
}

// DeleteCampaign handles DELETE /api/v1/campaigns/:uuid
func (h *CampaignHandler) DeleteCampaign(c fiber.Ctx) error {
	if err := h.campaignFlow.DeleteCampaign(requestContext(c), c.Params("uuid")); err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Campaign deleted successfully", nil)
}

// SaveTRPPlan handles PUT /api/v1/campaigns/:id/trp-plan
func (h *CampaignHandler) SaveTRPPlan(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.SaveTRPPlanRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.CampaignID = id
	if err := h.campaignFlow.SaveTRPPlan(requestContext(c), &req); err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "TRP plan saved successfully", nil)
}

// CreateWave handles POST /api/v1/campaigns/:id/waves
func (h *CampaignHandler) CreateWave(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.CreateWaveRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.CampaignID = id
	result, err := h.campaignFlow.CreateWave(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusCreated, "Wave created successfully", result)
}

// UpdateWave handles PATCH /api/v1/waves/:id
func (h *CampaignHandler) UpdateWave(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.UpdateWaveRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.ID = id
	result, err := h.campaignFlow.UpdateWave(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Wave updated successfully", result)
}

// ListWaves handles GET /api/v1/campaigns/:id/waves
func (h *CampaignHandler) ListWaves(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.campaignFlow.ListWaves(requestContext(c), id)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Waves retrieved successfully", result)
}

// DeleteWave handles DELETE /api/v1/waves/:id
func (h *CampaignHandler) DeleteWave(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	if err := h.campaignFlow.DeleteWave(requestContext(c), id); err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Wave deleted successfully", nil)
}

// CreateTVC handles POST /api/v1/campaigns/:id/tvcs
func (h *CampaignHandler) CreateTVC(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	var req dto.CreateTVCRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	req.CampaignID = id
	result, err := h.campaignFlow.CreateTVC(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusCreated, "TVC created successfully", result)
}

// ListTVCs handles GET /api/v1/campaigns/:id/tvcs
func (h *CampaignHandler) ListTVCs(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	result, err := h.campaignFlow.ListTVCs(requestContext(c), id)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "TVCs retrieved successfully", result)
}

// DeleteTVC handles DELETE /api/v1/tvcs/:id
func (h *CampaignHandler) DeleteTVC(c fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST", nil)
	}
	if err := h.campaignFlow.DeleteTVC(requestContext(c), id); err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "TVC deleted successfully", nil)
}

// CalendarMonth handles GET /api/v1/calendar/:year/:month
func (h *CampaignHandler) CalendarMonth(c fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid year", "INVALID_REQUEST", nil)
	}
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid month", "INVALID_REQUEST", nil)
	}
	result, err := h.campaignFlow.CalendarMonth(requestContext(c), year, month)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "Calendar retrieved successfully", result)
}

// ListRemoteCampaigns handles GET /api/v1/crm/campaigns
func (h *CampaignHandler) ListRemoteCampaigns(c fiber.Ctx) error {
	result, err := h.campaignFlow.ListRemoteCampaigns(requestContext(c))
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusOK, "CRM campaigns retrieved successfully", result)
}

// ImportFromCRM handles POST /api/v1/crm/import
func (h *CampaignHandler) ImportFromCRM(c fiber.Ctx) error {
	var req dto.ImportCampaignRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationErrorResponse(c, err)
	}
	result, err := h.campaignFlow.ImportFromCRM(requestContext(c), &req)
	if err != nil {
		return businessErrorResponse(c, err)
	}
	return successResponse(c, fiber.StatusCreated, "Campaign imported successfully", result)
}
