package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError. Handlers map these onto HTTP statuses.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeUniqueness        = "UNIQUENESS_ERROR"
	CodeAuthentication    = "AUTHENTICATION_ERROR"
	CodeAuthorization     = "AUTHORIZATION_ERROR"
	CodeDuplicateEdge     = "DUPLICATE_EDGE"
	CodeCorruptCredential = "CORRUPT_CREDENTIAL"
	CodeNotFound          = "NOT_FOUND"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
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

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewUniquenessError reports a unique-constraint violation on the named field.
func NewUniquenessError(field string) *AppError {
	return &AppError{
		Code:    CodeUniqueness,
		Message: fmt.Sprintf("%s is already taken", field),
	}
}

// NewAuthenticationError is returned when no valid identity could be
// resolved. The message is deliberately generic: callers must not be able
// to tell which check failed.
func NewAuthenticationError() *AppError {
	return &AppError{
		Code:    CodeAuthentication,
		Message: "Invalid credentials",
	}
}

// NewAuthorizationError reports a valid identity with insufficient permission.
func NewAuthorizationError(message string) *AppError {
	return &AppError{
		Code:    CodeAuthorization,
		Message: message,
	}
}

// NewDuplicateEdgeError reports a relationship edge that already exists.
func NewDuplicateEdgeError(message string) *AppError {
	return &AppError{
		Code:    CodeDuplicateEdge,
		Message: message,
	}
}

// NewCorruptCredentialError reports a stored password hash that could not
// be parsed. This is an operator signal, never a user-facing condition.
func NewCorruptCredentialError(err error) *AppError {
	return &AppError{
		Code:    CodeCorruptCredential,
		Message: "Stored credential is corrupt",
		Err:     err,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeAuthorization,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// StatusForError maps an application error code to an HTTP status.
func StatusForError(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUniqueness, CodeDuplicateEdge:
		return fiber.StatusConflict
	case CodeAuthentication:
		return fiber.StatusUnauthorized
	case CodeAuthorization:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
