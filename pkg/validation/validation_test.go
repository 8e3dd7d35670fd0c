package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "kampomido/pkg/domain-errors"
)

type addCustomerForm struct {
	FullName string `validate:"required,notblank"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"omitempty,min=7"`
}

func TestValidateReturnsFieldMap(t *testing.T) {
	err := Validate(addCustomerForm{FullName: "  ", Email: "not-an-email"})
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	fields := dErrors.FieldsOf(err)
	assert.Equal(t, "email must be a valid email", fields["email"])
	assert.Equal(t, "full_name must not be blank", fields["full_name"])
	assert.NotContains(t, fields, "phone")
}

func TestValidateAcceptsValidForm(t *testing.T) {
	err := Validate(addCustomerForm{FullName: "Priya Sharma", Email: "priya@example.com", Phone: "9876543210"})
	assert.NoError(t, err)
}

func TestValidateMissingRequired(t *testing.T) {
	err := Validate(addCustomerForm{})
	require.Error(t, err)

	fields := dErrors.FieldsOf(err)
	assert.Equal(t, "full_name is required", fields["full_name"])
	assert.Equal(t, "email is required", fields["email"])
}
