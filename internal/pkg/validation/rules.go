package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// Field limits, matching the column widths of the schema
const (
	UsernameMaxLength    = 50
	PasswordMaxBytes     = 72 // bcrypt ignores anything longer
	LeaveDateMaxLength   = 20
	LeaveReasonMaxLength = 100
	SubjectMaxLength     = 20
)

// StringValidation checks one form value
type StringValidation struct {
	Field    string
	Value    string
	MaxLen   int
	MaxBytes int
	Required bool
}

// NewStringValidation creates a new string validation for a required field
func NewStringValidation(field, value string) *StringValidation {
	return &StringValidation{
		Field:    field,
		Value:    value,
		Required: true,
	}
}

// WithMaxLength sets the maximum length in characters
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithMaxBytes sets the maximum encoded length
func (v *StringValidation) WithMaxBytes(max int) *StringValidation {
	v.MaxBytes = max
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate returns a validation error naming the field, or nil
func (v *StringValidation) Validate() error {
	if strings.TrimSpace(v.Value) == "" {
		if v.Required {
			return v.fail(v.Field + " is required")
		}
		return nil
	}

	if v.MaxLen > 0 && utf8.RuneCountInString(v.Value) > v.MaxLen {
		return v.fail(fmt.Sprintf("%s must be at most %d characters", v.Field, v.MaxLen))
	}

	if v.MaxBytes > 0 && len(v.Value) > v.MaxBytes {
		return v.fail(fmt.Sprintf("%s must be at most %d bytes", v.Field, v.MaxBytes))
	}

	return nil
}

func (v *StringValidation) fail(message string) error {
	return apperrors.NewCustomError(apperrors.ErrValidationFailed, message).WithField(v.Field)
}

// All runs the validations in order and returns the first failure
func All(validations ...*StringValidation) error {
	for _, v := range validations {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
