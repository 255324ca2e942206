package models

import "time"

// HoraEntradaLayout es el formato ISO-8601 (UTC, ancho fijo) de hora_entrada.
// Con ancho fijo el orden lexicográfico coincide con el cronológico.
const HoraEntradaLayout = "2006-01-02T15:04:05.000000Z"

// Persona representa a una persona registrada en la fila de atención
type Persona struct {
	ID          int64   `json:"id" db:"id"`
	DNI         string  `json:"dni" db:"dni"`
	Nombre      string  `json:"nombre" db:"nombre"`
	Apellido    string  `json:"apellido" db:"apellido"`
	HoraEntrada string  `json:"hora_entrada" db:"hora_entrada"`
	Mutual      *string `json:"mutual" db:"mutual"`
	Atencion    *string `json:"atencion" db:"atencion"`
	Terminado   int     `json:"terminado" db:"terminado"` // 0 en espera, 1 atendida
}

// PersonaCreateRequest representa la solicitud para registrar una persona.
// dni, nombre y apellido los valida validation.ValidatePersonaCreate.
type PersonaCreateRequest struct {
	DNI      string  `json:"dni"`
	Nombre   string  `json:"nombre"`
	Apellido string  `json:"apellido"`
	Mutual   *string `json:"mutual,omitempty"`
	Atencion *string `json:"atencion,omitempty"`
}

// NewPersona arma el registro a insertar con la hora de entrada del servidor.
func NewPersona(req PersonaCreateRequest, now time.Time) Persona {
	return Persona{
		DNI:         req.DNI,
		Nombre:      req.Nombre,
		Apellido:    req.Apellido,
		HoraEntrada: now.UTC().Format(HoraEntradaLayout),
		Mutual:      req.Mutual,
		Atencion:    req.Atencion,
		Terminado:   0,
	}
}

// PersonaStats resume el estado de la fila
type PersonaStats struct {
	Total       int            `json:"total"`
	EnEspera    int            `json:"en_espera"`
	Terminados  int            `json:"terminados"`
	PorAtencion map[string]int `json:"por_atencion"`
}

// SinAtencion agrupa en las estadísticas a quienes no indicaron tipo de atención.
const SinAtencion = "sin_especificar"
