package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/yourorg/turnero/internal/feed"
	"github.com/yourorg/turnero/internal/handlers"
	"github.com/yourorg/turnero/internal/middleware"
	"github.com/yourorg/turnero/internal/store"
)

// Deps agrupa lo que necesitan las rutas. Feed es nil si el feed en vivo
// está deshabilitado.
type Deps struct {
	Store       store.Store
	Feed        *feed.Hub
	CORSOrigins string
	Version     string
}

func Register(app *fiber.App, d Deps) {
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog())
	app.Use(middleware.CORS(d.CORSOrigins))

	var pub feed.Publisher
	if d.Feed != nil {
		pub = d.Feed
	}

	personaHandler := handlers.NewPersonaHandler(d.Store, pub)
	healthHandler := handlers.NewHealthHandler(d.Store, d.Feed, d.Version)

	app.Get("/health", healthHandler.Health)

	// ============================================================================
	// PERSONAS (fila de atención)
	// ============================================================================
	personas := app.Group("/personas")
	personas.Get("/", personaHandler.ListPersonas)
	personas.Post("/", personaHandler.CreatePersona)
	personas.Get("/stats", personaHandler.GetPersonaStats)
	personas.Put("/:id/terminar", personaHandler.FinishPersona)
	personas.Delete("/:id", personaHandler.DeletePersona)

	// ============================================================================
	// FEED EN VIVO (pantallas de la sala de espera)
	// ============================================================================
	if d.Feed == nil {
		return
	}
	app.Use("/ws/personas", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/personas", websocket.New(d.Feed.Serve))
}
