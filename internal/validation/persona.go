package validation

import (
	"fmt"
	"strings"

	"github.com/yourorg/turnero/internal/models"
)

// FieldError representa un error de validación de un campo
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors agrupa todos los campos inválidos de una solicitud
type Errors []*FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

// Fields retorna los nombres de los campos inválidos, en orden
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, fe := range e {
		fields = append(fields, fe.Field)
	}
	return fields
}

// Required valida que un campo de texto obligatorio no esté vacío.
// Un valor con solo espacios se acepta tal cual.
func Required(value, fieldName string) error {
	if value == "" {
		return &FieldError{
			Field:   fieldName,
			Message: "es obligatorio",
		}
	}
	return nil
}

// ValidatePersonaCreate valida los campos obligatorios del alta de una persona.
// Retorna nil o un Errors con cada campo faltante.
func ValidatePersonaCreate(req models.PersonaCreateRequest) error {
	var errs Errors
	checks := []struct {
		value string
		field string
	}{
		{req.DNI, "dni"},
		{req.Nombre, "nombre"},
		{req.Apellido, "apellido"},
	}
	for _, check := range checks {
		if err := Required(check.value, check.field); err != nil {
			errs = append(errs, err.(*FieldError))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
