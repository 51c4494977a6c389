package handlers

import (
	"context"
	"errors"
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

// HomepageHandlerInterface defines the contract for homepage handlers
type HomepageHandlerInterface interface {
	GetHomepage(c fiber.Ctx) error
	UpsertHomepage(c fiber.Ctx) error
	DeleteHomepage(c fiber.Ctx) error
}

// HomepageHandler handles the homepage content endpoints. Reads are public;
// writes require an admin with the homepage permission.
type HomepageHandler struct {
	homepageFlow   businessflow.HomepageFlow
	permissionFlow businessflow.PermissionFlow
	validator      *validator.Validate
}

// NewHomepageHandler creates a new homepage handler
func NewHomepageHandler(
	homepageFlow businessflow.HomepageFlow,
	permissionFlow businessflow.PermissionFlow,
) *HomepageHandler {
	return &HomepageHandler{
		homepageFlow:   homepageFlow,
		permissionFlow: permissionFlow,
		validator:      validator.New(),
	}
}

func (h *HomepageHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *HomepageHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *HomepageHandler) requireActor(c fiber.Ctx, ctx context.Context) (*businessflow.AdminInfo, error) {
	info, ok := middleware.GetAdminInfoFromContext(c)
	if !ok || !info.IsAdmin {
		return nil, h.ErrorResponse(c, fiber.StatusForbidden, "Admin access required", "ADMIN_ACCESS_REQUIRED", nil)
	}
	if !h.permissionFlow.HasPermission(ctx, info.UserID, models.PermissionManageHomepage) {
		return nil, h.ErrorResponse(c, fiber.StatusForbidden, "Permission denied", "PERMISSION_DENIED", nil)
	}
	return info, nil
}

func (h *HomepageHandler) clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		metadata.SetRequestID(requestID)
	}
	if sessionID := c.Get("X-Session-ID"); sessionID != "" {
		metadata.SetSessionID(sessionID)
	}
	return metadata
}

// GetHomepage returns the full homepage content set
func (h *HomepageHandler) GetHomepage(c fiber.Ctx) error {
	result, err := h.homepageFlow.Get(h.createRequestContext(c, "/api/homepage"))
	if err != nil {
		log.Println("Homepage load failed", err)
		c.Set("Retry-After", "60")
		return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Database connection error", "DB_CONNECTION_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Homepage content retrieved successfully", result)
}

// UpsertHomepage creates or updates one content block, dispatching on the
// type discriminator. An unknown type yields 400 naming the accepted types.
func (h *HomepageHandler) UpsertHomepage(c fiber.Ctx) error {
	ctx := h.createRequestContext(c, "/api/homepage")
	actor, err := h.requireActor(c, ctx)
	if err != nil {
		return err
	}

	var req dto.HomepageUpsertRequest
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

	if err := h.homepageFlow.Upsert(ctx, &req, actor, h.clientMetadata(c)); err != nil {
		if businessflow.IsInvalidHomepageType(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_HOMEPAGE_TYPE", models.ValidHomepageTypes)
		}
		var be *businessflow.BusinessError
		if errors.As(err, &be) && be.Code == "INVALID_HOMEPAGE_PAYLOAD" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, be.Message, be.Code, nil)
		}

		return flowErrorResponse(c, err, "Homepage update failed", "HOMEPAGE_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Homepage content saved successfully", nil)
}

// DeleteHomepage removes one content block by type and id
func (h *HomepageHandler) DeleteHomepage(c fiber.Ctx) error {
	ctx := h.createRequestContext(c, "/api/homepage")
	actor, err := h.requireActor(c, ctx)
	if err != nil {
		return err
	}

	contentType := c.Query("type")
	id, parseErr := strconv.ParseUint(c.Query("id"), 10, 32)
	if contentType == "" || parseErr != nil || id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Both type and id are required", "INVALID_REQUEST", nil)
	}

	if err := h.homepageFlow.Delete(ctx, contentType, uint(id), actor, h.clientMetadata(c)); err != nil {
		if businessflow.IsInvalidHomepageType(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_HOMEPAGE_TYPE", models.ValidHomepageTypes)
		}
		if businessflow.IsHomepageNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Homepage entity not found", "HOMEPAGE_NOT_FOUND", nil)
		}

		return flowErrorResponse(c, err, "Homepage deletion failed", "HOMEPAGE_DELETE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Homepage content deleted successfully", nil)
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *HomepageHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
