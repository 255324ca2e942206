package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/turnero/internal/models"
)

func TestValidatePersonaCreateOK(t *testing.T) {
	err := ValidatePersonaCreate(models.PersonaCreateRequest{
		DNI:      "12345678",
		Nombre:   "Ana",
		Apellido: "Lopez",
	})
	assert.NoError(t, err)
}

func TestValidatePersonaCreateMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		req    models.PersonaCreateRequest
		fields []string
	}{
		{"sin dni", models.PersonaCreateRequest{Nombre: "Ana", Apellido: "Lopez"}, []string{"dni"}},
		{"sin nombre", models.PersonaCreateRequest{DNI: "1", Apellido: "Lopez"}, []string{"nombre"}},
		{"sin apellido", models.PersonaCreateRequest{DNI: "1", Nombre: "Ana"}, []string{"apellido"}},
		{"vacia", models.PersonaCreateRequest{}, []string{"dni", "nombre", "apellido"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePersonaCreate(tt.req)
			require.Error(t, err)

			var errs Errors
			require.True(t, errors.As(err, &errs))
			assert.Equal(t, tt.fields, errs.Fields())
		})
	}
}

func TestValidatePersonaCreateAcceptsWhitespace(t *testing.T) {
	err := ValidatePersonaCreate(models.PersonaCreateRequest{DNI: "1", Nombre: "Ana", Apellido: "   "})
	assert.NoError(t, err)
	assert.NoError(t, Required(" ", "dni"))
}

func TestFieldErrorMessage(t *testing.T) {
	err := Required("", "dni")
	require.Error(t, err)
	assert.Equal(t, "dni: es obligatorio", err.Error())

	errs := Errors{{Field: "dni", Message: "es obligatorio"}, {Field: "nombre", Message: "es obligatorio"}}
	assert.Equal(t, "dni: es obligatorio; nombre: es obligatorio", errs.Error())
}
