package http

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/request"
)

func TestRegisterRequestValidate(t *testing.T) {
	req := RegisterRequest{
		Name:            "Imam Yusuf",
		Email:           "imam@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	assert.NoError(t, req.Validate())
}

func TestRegisterRequestPasswordMismatch(t *testing.T) {
	req := RegisterRequest{
		Name:            "Imam Yusuf",
		Email:           "imam@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	}

	err := req.Validate()
	require.Error(t, err)

	var fieldErr *request.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "confirm_password", fieldErr.Field, "the mismatch belongs to the confirmation field, not the password")
}
