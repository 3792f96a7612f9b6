package handlers

import (
	"fmt"

	"github.com/bpnlt/tv-planner/app/middleware"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/gofiber/fiber/v3"
)

// ReportHandler handles campaign report HTTP requests
type ReportHandler struct {
	reportFlow businessflow.ReportFlow
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportFlow businessflow.ReportFlow) *ReportHandler {
	return &ReportHandler{reportFlow: reportFlow}
}

// GetCampaignReport handles GET /api/v1/campaigns/:uuid/report
func (h *ReportHandler) GetCampaignReport(c fiber.Ctx) error {
	result, err := h.reportFlow.GetCampaignReportData(requestContext(c), c.Params("uuid"))
	if err != nil {
		return businessErrorResponse(c, err)
	}
	if result == nil {
		return errorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	}
	return successResponse(c, fiber.StatusOK, "Report assembled successfully", result)
}

// ExportCampaignExcel handles GET /api/v1/campaigns/:uuid/report.xlsx
func (h *ReportHandler) ExportCampaignExcel(c fiber.Ctx) error {
	data, filename, err := h.reportFlow.ExportCampaignExcel(requestContext(c), c.Params("uuid"))
	if err != nil {
		return businessErrorResponse(c, err)
	}
	middleware.CountReportExported("xlsx")
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// ExportCampaignCSV handles GET /api/v1/campaigns/:uuid/report.csv
func (h *ReportHandler) ExportCampaignCSV(c fiber.Ctx) error {
	data, filename, err := h.reportFlow.ExportCampaignCSV(requestContext(c), c.Params("uuid"))
	if err != nil {
		return businessErrorResponse(c, err)
	}
	middleware.CountReportExported("csv")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
