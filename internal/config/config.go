package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"

	defaultPort = "5000"
)

// Database agrupa las variables de conexión sueltas (DB_USER, DB_HOST, ...).
// Solo se usan si DATABASE_URL no está definido.
type Database struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

// Config es la configuración del servidor leída del entorno
type Config struct {
	Port        string
	DatabaseURL string
	Database    Database
	Storage     string
	SkipSchema  bool
	CORSOrigins string
	LiveFeed    bool
	Version     string
}

// Load carga .env (si existe) y luego lee el entorno.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  No se pudo leer .env: %v", err)
	}
	return FromEnv()
}

// FromEnv lee la configuración desde variables de entorno, sin tocar .env
func FromEnv() (Config, error) {
	cfg := Config{
		Port:        envOr("PORT", defaultPort),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Database: Database{
			User: os.Getenv("DB_USER"),
			Pass: os.Getenv("DB_PASS"),
			Host: envOr("DB_HOST", "127.0.0.1"),
			Port: envOr("DB_PORT", "3306"),
			Name: os.Getenv("DB_NAME"),
		},
		Storage:     strings.ToLower(envOr("STORAGE", StorageMySQL)),
		SkipSchema:  isTrue(os.Getenv("DB_SKIP_SCHEMA")),
		CORSOrigins: envOr("CORS_ORIGINS", "*"),
		LiveFeed:    true,
		Version:     os.Getenv("APP_VERSION"),
	}

	if v := strings.TrimSpace(os.Getenv("LIVE_FEED")); v != "" {
		cfg.LiveFeed = isTrue(v)
	}

	switch cfg.Storage {
	case StorageMySQL, StorageMemory:
	default:
		return Config{}, fmt.Errorf("STORAGE=%q no soportado (use %q o %q)", cfg.Storage, StorageMySQL, StorageMemory)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func isTrue(v string) bool {
	v = strings.TrimSpace(v)
	return strings.EqualFold(v, "true") || v == "1"
}
