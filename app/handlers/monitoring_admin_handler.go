package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/app/middleware"
	businessflow "github.com/casinoradar/casinoradar/business_flow"
	"github.com/casinoradar/casinoradar/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// MonitoringAdminHandlerInterface defines the contract for monitoring handlers
type MonitoringAdminHandlerInterface interface {
	GetAdminInfo(c fiber.Ctx) error
	GetActivitySummary(c fiber.Ctx) error
	ListAlerts(c fiber.Ctx) error
	ResolveAlert(c fiber.Ctx) error
}

// MonitoringAdminHandler handles the monitoring dashboard endpoints
type MonitoringAdminHandler struct {
	permissionFlow businessflow.PermissionFlow
	activityFlow   businessflow.ActivityFlow
	alertFlow      businessflow.SecurityAlertFlow
	validator      *validator.Validate
}

// NewMonitoringAdminHandler creates a new monitoring handler
func NewMonitoringAdminHandler(
	permissionFlow businessflow.PermissionFlow,
	activityFlow businessflow.ActivityFlow,
	alertFlow businessflow.SecurityAlertFlow,
) *MonitoringAdminHandler {
	return &MonitoringAdminHandler{
		permissionFlow: permissionFlow,
		activityFlow:   activityFlow,
		alertFlow:      alertFlow,
		validator:      validator.New(),
	}
}

func (h *MonitoringAdminHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *MonitoringAdminHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *MonitoringAdminHandler) requireView(c fiber.Ctx, ctx context.Context) (*businessflow.AdminInfo, error) {
	info, ok := middleware.GetAdminInfoFromContext(c)
	if !ok || !info.IsAdmin {
		return nil, h.ErrorResponse(c, fiber.StatusForbidden, "Admin access required", "ADMIN_ACCESS_REQUIRED", nil)
	}
	// Reads gate on the coarse check; a false negative here costs a page,
	// not a write.
	if !h.permissionFlow.HasPermissionSync(info, models.PermissionViewMonitoring) {
		return nil, h.ErrorResponse(c, fiber.StatusForbidden, "Permission denied", "PERMISSION_DENIED", nil)
	}
	return info, nil
}

// GetAdminInfo returns the resolved admin identity of the caller
func (h *MonitoringAdminHandler) GetAdminInfo(c fiber.Ctx) error {
	info, ok := middleware.GetAdminInfoFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Admin access required", "ADMIN_ACCESS_REQUIRED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Admin info retrieved successfully", dto.AdminInfoDTO{
		IsAdmin:          info.IsAdmin,
		UserID:           info.UserID,
		Email:            info.Email,
		Role:             info.Role,
		TotalPermissions: info.TotalPermissions,
	})
}

// GetActivitySummary returns the monitoring dashboard aggregates. A partial
// aggregate failure still renders the rest of the dashboard.
func (h *MonitoringAdminHandler) GetActivitySummary(c fiber.Ctx) error {
	ctx := h.createRequestContext(c, "/api/admin/monitoring/summary")
	if _, err := h.requireView(c, ctx); err != nil {
		return err
	}

	windowDays, _ := strconv.Atoi(c.Query("windowDays", "7"))

	result, err := h.activityFlow.Summary(ctx, windowDays)
	if err != nil {
		log.Println("Activity summary partially failed", err)
		c.Set("Retry-After", "60")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.APIResponse{
			Success: false,
			Message: "Summary is incomplete",
			Data:    result,
			Error:   dto.ErrorDetail{Code: "DB_CONNECTION_ERROR"},
		})
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Activity summary retrieved successfully", result)
}

// ListAlerts returns security alerts newest first
func (h *MonitoringAdminHandler) ListAlerts(c fiber.Ctx) error {
	ctx := h.createRequestContext(c, "/api/admin/monitoring/alerts")
	if _, err := h.requireView(c, ctx); err != nil {
		return err
	}

	unresolvedOnly := c.Query("unresolved") == "true"
	limit, _ := strconv.Atoi(c.Query("limit", "12"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	result, err := h.alertFlow.List(ctx, unresolvedOnly, limit, offset)
	if err != nil {
		return flowErrorResponse(c, err, "Failed to list alerts", "ALERT_LIST_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Alerts retrieved successfully", result)
}

// ResolveAlert marks an alert resolved. Resolving twice is success.
func (h *MonitoringAdminHandler) ResolveAlert(c fiber.Ctx) error {
	alertID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || alertID == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid alert id", "INVALID_ALERT_ID", nil)
	}

	ctx := h.createRequestContext(c, "/api/admin/monitoring/alerts/"+c.Params("id"))
	info, ok := middleware.GetAdminInfoFromContext(c)
	if !ok || !info.IsAdmin {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Admin access required", "ADMIN_ACCESS_REQUIRED", nil)
	}
	// Resolution is a write; it takes the authoritative check.
	if !h.permissionFlow.HasPermission(ctx, info.UserID, models.PermissionResolveAlerts) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Permission denied", "PERMISSION_DENIED", nil)
	}

	var req dto.ResolveAlertRequest
	if len(c.Body()) > 0 {
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
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		metadata.SetRequestID(requestID)
	}

	if err := h.alertFlow.Resolve(ctx, uint(alertID), info, req.Notes, metadata); err != nil {
		if businessflow.IsAlertNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Alert not found", "ALERT_NOT_FOUND", nil)
		}

		return flowErrorResponse(c, err, "Alert resolution failed", "ALERT_RESOLVE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Alert resolved successfully", nil)
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *MonitoringAdminHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
