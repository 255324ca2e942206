package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/turnero/internal/feed"
	"github.com/yourorg/turnero/internal/models"
	"github.com/yourorg/turnero/internal/store"
	"github.com/yourorg/turnero/internal/validation"
)

const (
	msgCamposObligatorios = "DNI, nombre y apellido son obligatorios"
	msgDNIRegistrado      = "El DNI ya está registrado"
	msgNoEncontrada       = "Persona no encontrada"
	msgTerminada          = "Persona marcada como terminado"
	msgEliminada          = "Persona eliminada correctamente"
)

type PersonaHandler struct {
	store store.Store
	feed  feed.Publisher
	now   func() time.Time
}

// NewPersonaHandler crea el handler de personas. pub puede ser nil si
// el feed en vivo está deshabilitado.
func NewPersonaHandler(s store.Store, pub feed.Publisher) *PersonaHandler {
	return &PersonaHandler{store: s, feed: pub, now: time.Now}
}

// CreatePersona registra una nueva persona en la fila
func (h *PersonaHandler) CreatePersona(c *fiber.Ctx) error {
	var req models.PersonaCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.ValidatePersonaCreate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msgCamposObligatorios,
		})
	}

	persona, err := h.store.Create(c.UserContext(), models.NewPersona(req, h.now()))
	if errors.Is(err, store.ErrDuplicateDNI) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msgDNIRegistrado,
		})
	}
	if err != nil {
		return h.internalError(c, "crear persona", err)
	}

	h.publish(feed.Event{Type: feed.EventPersonaCreada, ID: persona.ID, Persona: &persona})

	return c.Status(fiber.StatusCreated).JSON(persona)
}

// ListPersonas retorna todas las personas, la llegada más reciente primero
func (h *PersonaHandler) ListPersonas(c *fiber.Ctx) error {
	personas, err := h.store.List(c.UserContext())
	if err != nil {
		return h.internalError(c, "listar personas", err)
	}
	if personas == nil {
		personas = []models.Persona{}
	}
	return c.JSON(personas)
}

// FinishPersona marca a la persona como atendida (terminado = 1)
func (h *PersonaHandler) FinishPersona(c *fiber.Ctx) error {
	id, ok := personaID(c)
	if !ok {
		return notFound(c)
	}

	err := h.store.Finish(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return h.internalError(c, "terminar persona", err)
	}

	h.publish(feed.Event{Type: feed.EventPersonaTerminada, ID: id})

	return c.JSON(fiber.Map{
		"message": msgTerminada,
	})
}

// DeletePersona elimina definitivamente a la persona
func (h *PersonaHandler) DeletePersona(c *fiber.Ctx) error {
	id, ok := personaID(c)
	if !ok {
		return notFound(c)
	}

	err := h.store.Delete(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return h.internalError(c, "eliminar persona", err)
	}

	h.publish(feed.Event{Type: feed.EventPersonaEliminada, ID: id})

	return c.JSON(fiber.Map{
		"message": msgEliminada,
	})
}

// GetPersonaStats resume cuántas personas esperan y cuántas fueron atendidas
func (h *PersonaHandler) GetPersonaStats(c *fiber.Ctx) error {
	stats, err := h.store.Stats(c.UserContext())
	if err != nil {
		return h.internalError(c, "estadísticas de personas", err)
	}
	return c.JSON(stats)
}

func (h *PersonaHandler) publish(ev feed.Event) {
	if h.feed == nil {
		return
	}
	ev.Timestamp = h.now().UTC()
	h.feed.Publish(ev)
}

// internalError registra el error y lo devuelve tal cual al cliente
func (h *PersonaHandler) internalError(c *fiber.Ctx, op string, err error) error {
	log.Printf("❌ [PERSONAS] %s: %v (request_id=%s)", op, err, c.GetRespHeader(fiber.HeaderXRequestID))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// personaID lee :id; un id no numérico se trata como inexistente
func personaID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": msgNoEncontrada,
	})
}
