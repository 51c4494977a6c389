// Package businessflow contains the core business logic and use cases for the casino review platform
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Admin and permission errors
	ErrAdminNotFound    = errors.New("admin not found")
	ErrAdminInactive    = errors.New("admin is inactive")
	ErrPermissionDenied = errors.New("permission denied")

	// Alert errors
	ErrAlertNotFound = errors.New("alert not found")

	// Casino errors
	ErrCasinoNotFound = errors.New("casino not found")

	// Report errors
	ErrReportNotFound       = errors.New("report not found")
	ErrInvalidReportStatus  = errors.New("report status is not one of the accepted values")
	ErrReportCasinoRequired = errors.New("casino name is required")

	// Homepage errors
	ErrInvalidHomepageType = errors.New("unknown homepage content type")
	ErrHomepageNotFound    = errors.New("homepage entity not found")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage backend unavailable")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsAdminNotFound(err error) bool {
	return errors.Is(err, ErrAdminNotFound)
}

func IsAdminInactive(err error) bool {
	return errors.Is(err, ErrAdminInactive)
}

func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsAlertNotFound(err error) bool {
	return errors.Is(err, ErrAlertNotFound)
}

func IsCasinoNotFound(err error) bool {
	return errors.Is(err, ErrCasinoNotFound)
}

func IsReportNotFound(err error) bool {
	return errors.Is(err, ErrReportNotFound)
}

func IsInvalidReportStatus(err error) bool {
	return errors.Is(err, ErrInvalidReportStatus)
}

func IsReportCasinoRequired(err error) bool {
	return errors.Is(err, ErrReportCasinoRequired)
}

func IsInvalidHomepageType(err error) bool {
	return errors.Is(err, ErrInvalidHomepageType)
}

func IsHomepageNotFound(err error) bool {
	return errors.Is(err, ErrHomepageNotFound)
}

func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
