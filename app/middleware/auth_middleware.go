// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/app/services"
	businessflow "github.com/casinoradar/casinoradar/business_flow"
	"github.com/gofiber/fiber/v3"
)

// AuthMiddleware validates provider session tokens for protected endpoints
type AuthMiddleware struct {
	tokenService   services.TokenService
	permissionFlow businessflow.PermissionFlow
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService, permissionFlow businessflow.PermissionFlow) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService:   tokenService,
		permissionFlow: permissionFlow,
	}
}

func bearerToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: "Authorization header is required",
			Error:   dto.ErrorDetail{Code: "MISSING_AUTHORIZATION_HEADER"},
		})
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: "Invalid authorization header format. Expected 'Bearer <token>'",
			Error:   dto.ErrorDetail{Code: "INVALID_AUTHORIZATION_FORMAT"},
		})
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: "Session token is required",
			Error:   dto.ErrorDetail{Code: "MISSING_SESSION_TOKEN"},
		})
	}
	return token, nil
}

func tokenValidationError(c fiber.Ctx, err error) error {
	var code, msg string
	if errors.Is(err, services.ErrTokenExpired) {
		code = "TOKEN_EXPIRED"
		msg = "Session token has expired"
	} else if errors.Is(err, services.ErrTokenInvalid) {
		code = "TOKEN_INVALID"
		msg = "Invalid session token"
	} else {
		code = "TOKEN_VALIDATION_FAILED"
		msg = "Token validation failed"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: msg,
		Error:   dto.ErrorDetail{Code: code},
	})
}

// AdminAuthenticate validates the session token and requires an active admin
// record behind it. A valid token for a non-admin principal yields 403.
func (m *AuthMiddleware) AdminAuthenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := m.tokenService.ValidateSessionToken(token)
		if err != nil {
			return tokenValidationError(c, err)
		}

		info := m.permissionFlow.GetAdminInfo(c.Context(), claims.Subject)
		if !info.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
				Success: false,
				Message: "Admin access required",
				Error:   dto.ErrorDetail{Code: "ADMIN_ACCESS_REQUIRED"},
			})
		}

		c.Locals("user_id", claims.Subject)
		c.Locals("user_email", claims.Email)
		c.Locals("token_claims", claims)
		c.Locals("admin_info", info)

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// OptionalAuth validates the session token if present but never rejects
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Next()
		}

		claims, err := m.tokenService.ValidateSessionToken(token)
		if err != nil {
			return c.Next()
		}

		c.Locals("user_id", claims.Subject)
		c.Locals("user_email", claims.Email)
		c.Locals("token_claims", claims)

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// GetUserIDFromContext extracts the provider subject from the request context
func GetUserIDFromContext(c fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("user_id").(string)
	return userID, ok
}

// GetAdminInfoFromContext extracts the resolved admin info from the request context
func GetAdminInfoFromContext(c fiber.Ctx) (*businessflow.AdminInfo, bool) {
	info, ok := c.Locals("admin_info").(*businessflow.AdminInfo)
	return info, ok
}

// GetTokenClaimsFromContext extracts token claims from the request context
func GetTokenClaimsFromContext(c fiber.Ctx) (*services.SessionClaims, bool) {
	claims, ok := c.Locals("token_claims").(*services.SessionClaims)
	return claims, ok
}
