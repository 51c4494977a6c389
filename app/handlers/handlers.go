// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"fmt"
	"log"

	"github.com/casinoradar/casinoradar/app/dto"
	businessflow "github.com/casinoradar/casinoradar/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// flowErrorResponse maps an unclassified flow failure to the wire. Storage
// failures surface as 503 with a retry hint so clients back off instead of
// treating the outage as a server bug; anything else keeps the operation's
// own code as a 500.
func flowErrorResponse(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if businessflow.IsStorageUnavailable(err) {
		log.Println("Storage unavailable", err)
		c.Set("Retry-After", "60")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.APIResponse{
			Success: false,
			Message: "Database connection error",
			Error:   dto.ErrorDetail{Code: "DB_CONNECTION_ERROR"},
		})
	}

	log.Println(fallbackMessage, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
		Success: false,
		Message: fallbackMessage,
		Error:   dto.ErrorDetail{Code: fallbackCode},
	})
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "url":
		return err.Field() + " must be a valid URL"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}
