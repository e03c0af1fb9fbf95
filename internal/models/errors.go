package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the application error taxonomy.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeNotAuthorized   = "NOT_AUTHORIZED"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeConflict        = "CONFLICT"
	CodeStore           = "STORE_ERROR"
)

// ErrorResponse is the standardized API error body.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// AppError is a structured application error. Fields carries field-level
// validation messages verbatim for the client.
type AppError struct {
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed, user-correctable input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewFieldValidationError reports per-field validation failures.
func NewFieldValidationError(fields map[string]string) *AppError {
	return &AppError{Code: CodeValidation, Message: "Validation failed", Fields: fields}
}

// NewNotFoundError reports an absent entity or sub-entity.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewNotAuthorizedError reports an authenticated caller acting on an entity
// they do not own. Distinct from NewUnauthenticatedError.
func NewNotAuthorizedError(message string) *AppError {
	return &AppError{Code: CodeNotAuthorized, Message: message}
}

// NewUnauthenticatedError reports a missing, invalid, or expired token.
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Code: CodeUnauthenticated, Message: message}
}

// NewConflictError reports a uniqueness violation such as a duplicate email,
// a taken handle, or a double like.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewStoreError wraps an underlying persistence failure.
func NewStoreError(err error) *AppError {
	return &AppError{Code: CodeStore, Message: "Storage error", Err: err}
}

// statusForCode maps taxonomy codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeNotAuthorized:
		return fiber.StatusForbidden
	case CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes a standardized error response, deriving the HTTP
// status from the error's taxonomy code.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(statusForCode(appErr.Code)).JSON(ErrorResponse{
			Error:  appErr.Message,
			Code:   appErr.Code,
			Fields: appErr.Fields,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: err.Error(),
	})
}
