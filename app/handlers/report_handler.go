package handlers

import (
	"context"
	"time"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/app/middleware"
	businessflow "github.com/casinoradar/casinoradar/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ReportHandlerInterface defines the contract for public report handlers
type ReportHandlerInterface interface {
	SubmitReport(c fiber.Ctx) error
}

// ReportHandler handles the public casino report submission endpoint
type ReportHandler struct {
	reportFlow businessflow.CasinoReportFlow
	validator  *validator.Validate
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportFlow businessflow.CasinoReportFlow) *ReportHandler {
	return &ReportHandler{
		reportFlow: reportFlow,
		validator:  validator.New(),
	}
}

func (h *ReportHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ReportHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SubmitReport accepts a public casino report submission. When the caller
// presented a valid session token, the submission is attributed to the
// token's email unless the body names a reporter explicitly.
func (h *ReportHandler) SubmitReport(c fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if req.ReporterEmail == "" {
		if claims, ok := middleware.GetTokenClaimsFromContext(c); ok {
			req.ReporterEmail = claims.Email
		}
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		metadata.SetRequestID(requestID)
	}

	result, err := h.reportFlow.Submit(h.createRequestContext(c, "/api/reports"), &req, metadata)
	if err != nil {
		if businessflow.IsInvalidReportStatus(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_REPORT_STATUS", nil)
		}
		if businessflow.IsReportCasinoRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Casino name is required", "REPORT_CASINO_REQUIRED", nil)
		}

		return flowErrorResponse(c, err, "Report submission failed", "REPORT_SUBMISSION_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Report submitted successfully", result)
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *ReportHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
