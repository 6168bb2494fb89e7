package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// RegisterFormFieldNames makes validation messages use form field names
// ("leave_date") instead of Go struct field names ("LeaveDate").
func RegisterFormFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
}

// BindForm binds the posted form into obj and converts binding failures
// into validation errors.
func BindForm(c *gin.Context, obj interface{}) error {
	err := c.ShouldBind(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, formatValidationError(fe))
		}
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, strings.Join(messages, "; ")).
			WithField(verrs[0].Field())
	}

	return apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid form: "+err.Error())
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
