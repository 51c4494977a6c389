package handlers

import (
	"context"
	"log"
	"time"

	"github.com/casinoradar/casinoradar/app/dto"
	businessflow "github.com/casinoradar/casinoradar/business_flow"
	"github.com/casinoradar/casinoradar/utils"
	"github.com/gofiber/fiber/v3"
)

// CasinoHandlerInterface defines the contract for public casino handlers
type CasinoHandlerInterface interface {
	ListCasinos(c fiber.Ctx) error
	GetCasino(c fiber.Ctx) error
}

// CasinoHandler handles the public casino listing and detail endpoints
type CasinoHandler struct {
	casinoFlow businessflow.CasinoFlow
}

// NewCasinoHandler creates a new casino handler
func NewCasinoHandler(casinoFlow businessflow.CasinoFlow) *CasinoHandler {
	return &CasinoHandler{casinoFlow: casinoFlow}
}

func (h *CasinoHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CasinoHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListCasinos serves the paginated casino listing. Malformed query values
// never fail the request; a storage failure yields 503 with Retry-After so
// the page can degrade instead of breaking.
func (h *CasinoHandler) ListCasinos(c fiber.Ctx) error {
	query := &dto.CasinoListQuery{
		Page:        c.Query("page"),
		Limit:       c.Query("limit"),
		Search:      c.Query("search"),
		SafetyIndex: c.Query("safetyIndex"),
		IsNew:       c.Query("isNew"),
		IsHot:       c.Query("isHot"),
		IsFeatured:  c.Query("isFeatured"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
	}

	result, err := h.casinoFlow.List(h.createRequestContext(c, "/api/casinos"), query)
	if err != nil {
		log.Println("Casino listing failed", err)
		c.Set("Retry-After", "60")
		return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Database connection error", "DB_CONNECTION_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Casinos retrieved successfully", result)
}

// GetCasino serves one casino card by UUID or slug.
func (h *CasinoHandler) GetCasino(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Casino identifier is required", "MISSING_CASINO_ID", nil)
	}

	ctx := h.createRequestContext(c, "/api/casinos/"+id)

	card, err := h.casinoFlow.GetByUUID(ctx, id)
	if err != nil && businessflow.IsCasinoNotFound(err) {
		// Not a UUID or no row behind it; fall through to slug lookup.
		card, err = h.casinoFlow.GetBySlug(ctx, id)
	}
	if err != nil {
		if businessflow.IsCasinoNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Casino not found", "CASINO_NOT_FOUND", nil)
		}
		log.Println("Casino lookup failed", err)
		c.Set("Retry-After", "60")
		return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Database connection error", "DB_CONNECTION_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Casino retrieved successfully", card)
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *CasinoHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

// createRequestContextWithTimeout creates a context with custom timeout and request-scoped values
func createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
