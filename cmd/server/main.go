package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/turnero/internal/config"
	appdb "github.com/yourorg/turnero/internal/db"
	"github.com/yourorg/turnero/internal/feed"
	"github.com/yourorg/turnero/internal/routes"
	"github.com/yourorg/turnero/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuración inválida: %v", err)
	}

	// ============================================================================
	// STORAGE
	// ============================================================================
	var (
		st    store.Store
		sqlDB *sql.DB
	)
	switch cfg.Storage {
	case config.StorageMemory:
		log.Println("⚠️  STORAGE=memory: los datos se pierden al reiniciar")
		st = store.NewInMemory()
	default:
		sqlDB, err = appdb.Connect(cfg)
		if err != nil {
			log.Fatalf("❌ db connect error: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = appdb.Prepare(ctx, sqlDB, cfg)
		cancel()
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		st = store.NewMySQL(sqlDB)
		log.Println("✅ Base de datos lista (tabla personas al día)")
	}

	// ============================================================================
	// FEED EN VIVO
	// ============================================================================
	feedCtx, stopFeed := context.WithCancel(context.Background())
	var hub *feed.Hub
	if cfg.LiveFeed {
		hub = feed.NewHub()
		go hub.Run(feedCtx)
	}

	app := fiber.New(fiber.Config{AppName: "turnero"})
	routes.Register(app, routes.Deps{
		Store:       st,
		Feed:        hub,
		CORSOrigins: cfg.CORSOrigins,
		Version:     cfg.Version,
	})

	// ============================================================================
	// GRACEFUL SHUTDOWN
	// ============================================================================
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("🛑 Señal de terminación recibida, cerrando servidor...")
		stopFeed()
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️  Error cerrando servidor: %v", err)
		}
	}()

	log.Printf("🚀 Servidor escuchando en :%s", cfg.Port)
	log.Println("📍 Endpoints disponibles:")
	log.Println("   GET    /personas                 - Lista (llegada más reciente primero)")
	log.Println("   POST   /personas                 - Registrar persona")
	log.Println("   PUT    /personas/:id/terminar    - Marcar como atendida")
	log.Println("   DELETE /personas/:id             - Eliminar persona")
	log.Println("   GET    /personas/stats           - Resumen de la fila")
	if hub != nil {
		log.Println("   WS     /ws/personas              - Feed en vivo")
	}

	err = app.Listen(":" + cfg.Port)
	stopFeed()
	closeDB(sqlDB)
	if err != nil {
		log.Printf("❌ Error del servidor: %v", err)
		os.Exit(1)
	}
	log.Println("✅ Servidor cerrado correctamente")
}

// closeDB cierra el pool de MariaDB; con STORAGE=memory db es nil
func closeDB(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Printf("⚠️  Error cerrando base de datos: %v", err)
	}
}
