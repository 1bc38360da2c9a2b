package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string  `json:"name" validate:"required,max=5"`
	Email  string  `json:"email" validate:"required,email"`
	Kind   string  `json:"kind" validate:"omitempty,oneof=a b c"`
	Day    string  `json:"day" validate:"omitempty,datetime=2006-01-02"`
	Limit  int     `query:"limit" validate:"min=1,max=10"`
	Nick   *string `json:"nick" validate:"omitnil,min=1"`
}

func TestValidatePasses(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&sample{Name: "Ann", Email: "ann@example.com", Kind: "b", Day: "2024-03-15", Limit: 3})
	assert.NoError(t, err)
}

func TestFormatValidationErrorsNamesFieldAndConstraint(t *testing.T) {
	v := NewValidator()
	empty := ""
	err := v.Validate(&sample{Name: "Too long", Email: "nope", Kind: "z", Day: "15/03/2024", Limit: 0, Nick: &empty})
	require.Error(t, err)

	msgs := v.FormatValidationErrors(err)
	assert.Equal(t, "name must be at most 5 characters", msgs["name"])
	assert.Equal(t, "email must be a valid email address", msgs["email"])
	assert.Equal(t, "kind must be one of: a, b, c", msgs["kind"])
	assert.Equal(t, "day must match the format 2006-01-02", msgs["day"])
	assert.Equal(t, "limit must be at least 1", msgs["limit"])
	assert.Equal(t, "nick must be at least 1 characters", msgs["nick"])
}

func TestFormatValidationErrorsIgnoresOtherErrors(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.FormatValidationErrors(assert.AnError))
}
