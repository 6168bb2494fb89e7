package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

func TestStringValidation(t *testing.T) {
	tests := []struct {
		name    string
		v       *StringValidation
		wantErr string
	}{
		{"ok", NewStringValidation("username", "alice").WithMaxLength(UsernameMaxLength), ""},
		{"missing", NewStringValidation("username", "  "), "username is required"},
		{"optional empty", NewStringValidation("note", "").WithRequired(false), ""},
		{"too long", NewStringValidation("subject_name", strings.Repeat("a", 21)).WithMaxLength(SubjectMaxLength), "subject_name must be at most 20 characters"},
		{"runes not bytes", NewStringValidation("subject_name", strings.Repeat("é", 20)).WithMaxLength(SubjectMaxLength), ""},
		{"too many bytes", NewStringValidation("password", strings.Repeat("é", 40)).WithMaxBytes(PasswordMaxBytes), "password must be at most 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, tt.wantErr, err.Error())

			var custom *apperrors.CustomError
			require.ErrorAs(t, err, &custom)
			assert.Equal(t, tt.v.Field, custom.Field)
		})
	}
}

func TestAll_ReturnsFirstFailure(t *testing.T) {
	err := All(
		NewStringValidation("leave_date", "Friday").WithMaxLength(LeaveDateMaxLength),
		NewStringValidation("leave_reason", ""),
		NewStringValidation("other", ""),
	)
	require.Error(t, err)
	assert.Equal(t, "leave_reason is required", err.Error())

	assert.NoError(t, All())
}
