package store

import (
	"context"
	"errors"

	"github.com/yourorg/turnero/internal/models"
)

var (
	// ErrNotFound is returned when no persona has the requested id.
	ErrNotFound = errors.New("persona no encontrada")
	// ErrDuplicateDNI is returned when the dni is already registered,
	// whether caught by the pre-check or by the unique constraint.
	ErrDuplicateDNI = errors.New("dni ya registrado")
)

// Store persiste personas. Cada método es atómico por sí mismo.
type Store interface {
	// List retorna todas las personas, la llegada más reciente primero.
	List(ctx context.Context) ([]models.Persona, error)
	// Create inserta la persona con terminado=0 y retorna el registro con su id.
	Create(ctx context.Context, p models.Persona) (models.Persona, error)
	// Finish marca terminado=1. Repetirlo no es un error.
	Finish(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (models.PersonaStats, error)
	Ping(ctx context.Context) error
}
