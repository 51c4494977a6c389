package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/app/middleware"
	businessflow "github.com/casinoradar/casinoradar/business_flow"
	"github.com/casinoradar/casinoradar/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CasinoReportAdminHandlerInterface defines the contract for admin report handlers
type CasinoReportAdminHandlerInterface interface {
	ListReports(c fiber.Ctx) error
	CreateReport(c fiber.Ctx) error
	UpdateReport(c fiber.Ctx) error
	DeleteReport(c fiber.Ctx) error
	ExportReports(c fiber.Ctx) error
}

// CasinoReportAdminHandler handles the admin casino report endpoints
type CasinoReportAdminHandler struct {
	reportFlow     businessflow.CasinoReportFlow
	permissionFlow businessflow.PermissionFlow
	validator      *validator.Validate
}

// NewCasinoReportAdminHandler creates a new admin report handler
func NewCasinoReportAdminHandler(
	reportFlow businessflow.CasinoReportFlow,
	permissionFlow businessflow.PermissionFlow,
) *CasinoReportAdminHandler {
	return &CasinoReportAdminHandler{
		reportFlow:     reportFlow,
		permissionFlow: permissionFlow,
		validator:      validator.New(),
	}
}

func (h *CasinoReportAdminHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CasinoReportAdminHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// requireActor resolves the acting admin and runs the authoritative
// permission check. Writes go through this; the sync check is for UI only.
func (h *CasinoReportAdminHandler) requireActor(c fiber.Ctx, ctx context.Context) (*businessflow.AdminInfo, error) {
	info, ok := middleware.GetAdminInfoFromContext(c)
	if !ok || !info.IsAdmin {
		return nil, h.ErrorResponse(c, fiber.StatusForbidden, "Admin access required", "ADMIN_ACCESS_REQUIRED", nil)
	}
	if !h.permissionFlow.HasPermission(ctx, info.UserID, models.PermissionManageReports) {
		return nil, h.ErrorResponse(c, fiber.StatusForbidden, "Permission denied", "PERMISSION_DENIED", nil)
	}
	return info, nil
}

func (h *CasinoReportAdminHandler) clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		metadata.SetRequestID(requestID)
	}
	if sessionID := c.Get("X-Session-ID"); sessionID != "" {
		metadata.SetSessionID(sessionID)
	}
	return metadata
}

// ListReports returns reports newest first with optional status filtering
func (h *CasinoReportAdminHandler) ListReports(c fiber.Ctx) error {
	ctx := h.createRequestContext(c, "/api/admin/casino-reports")
	if _, err := h.requireActor(c, ctx); err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "12"))
	status := c.Query("status")

	result, err := h.reportFlow.List(ctx, page, limit, status)
	if err != nil {
		if businessflow.IsInvalidReportStatus(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REPORT_STATUS", nil)
		}
		return flowErrorResponse(c, err, "Failed to list reports", "REPORT_LIST_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Reports retrieved successfully", result)
}

// CreateReport records a report on behalf of the acting admin
func (h *CasinoReportAdminHandler) CreateReport(c fiber.Ctx) error {
	ctx := h.createRequestContext(c, "/api/admin/casino-reports")
	actor, err := h.requireActor(c, ctx)
	if err != nil {
		return err
	}

	var req dto.CreateReportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	result, err := h.reportFlow.Create(ctx, &req, actor, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidReportStatus(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REPORT_STATUS", nil)
		}
		if businessflow.IsReportCasinoRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Casino name is required", "REPORT_CASINO_REQUIRED", nil)
		}

		return flowErrorResponse(c, err, "Report creation failed", "REPORT_CREATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Report created successfully", result)
}

// UpdateReport applies the given fields to an existing report
func (h *CasinoReportAdminHandler) UpdateReport(c fiber.Ctx) error {
	reportID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || reportID == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid report id", "INVALID_REPORT_ID", nil)
	}

	ctx := h.createRequestContext(c, "/api/admin/casino-reports/"+c.Params("id"))
	actor, err := h.requireActor(c, ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateReportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	result, err := h.reportFlow.Update(ctx, uint(reportID), &req, actor, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsReportNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Report not found", "REPORT_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidReportStatus(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REPORT_STATUS", nil)
		}

		return flowErrorResponse(c, err, "Report update failed", "REPORT_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Report updated successfully", result)
}

// DeleteReport removes a report. Deleting an id another admin already
// removed is reported as success, not 404.
func (h *CasinoReportAdminHandler) DeleteReport(c fiber.Ctx) error {
	reportID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || reportID == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid report id", "INVALID_REPORT_ID", nil)
	}

	ctx := h.createRequestContext(c, "/api/admin/casino-reports/"+c.Params("id"))
	actor, err := h.requireActor(c, ctx)
	if err != nil {
		return err
	}

	alreadyDeleted, err := h.reportFlow.Delete(ctx, uint(reportID), actor, h.clientMetadata(c))
	if err != nil {
		return flowErrorResponse(c, err, "Report deletion failed", "REPORT_DELETE_FAILED")
	}

	if alreadyDeleted {
		return h.SuccessResponse(c, fiber.StatusOK, "Report already deleted", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Report deleted successfully", nil)
}

// ExportReports streams all reports as an xlsx workbook
func (h *CasinoReportAdminHandler) ExportReports(c fiber.Ctx) error {
	ctx := h.createRequestContext(c, "/api/admin/casino-reports/export")
	actor, err := h.requireActor(c, ctx)
	if err != nil {
		return err
	}

	content, err := h.reportFlow.Export(ctx, actor, h.clientMetadata(c))
	if err != nil {
		return flowErrorResponse(c, err, "Report export failed", "REPORT_EXPORT_FAILED")
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="casino-reports.xlsx"`)
	return c.Send(content)
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *CasinoReportAdminHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
