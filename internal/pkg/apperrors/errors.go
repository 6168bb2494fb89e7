package apperrors

import "errors"

// Error kinds. Every error returned by a service wraps exactly one of these,
// and middleware.HandleError maps each kind to a single response shape.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("resource not found")
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Account errors
var (
	ErrStudentExists   = NewConflictError("Student account already exists")
	ErrAdminExists     = NewConflictError("Admin account already exists")
	ErrStudentNotFound = NewNotFoundError("student not found")
	ErrAdminNotFound   = NewNotFoundError("admin not found")
)

// Grade errors
var (
	ErrSubjectExists = NewConflictError("Subject already exists")
	ErrInvalidScore  = NewValidationError("score must be an integer")
)

// Leave errors
var (
	ErrLeaveNotFound = NewNotFoundError("leave request not found")
)

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewUnauthorizedError creates an authorization error with a message
func NewUnauthorizedError(message string) error {
	return &CustomError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError carries a user-facing message on top of an error kind
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithField records which input field caused the error
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}
