package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/yourorg/turnero/internal/config"
)

// DSN arma el DSN de MariaDB/MySQL. DATABASE_URL tiene prioridad sobre DB_*.
func DSN(cfg config.Config) (string, error) {
	raw := cfg.DatabaseURL
	if raw == "" {
		raw = fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4,utf8",
			cfg.Database.User,
			cfg.Database.Pass,
			net.JoinHostPort(cfg.Database.Host, cfg.Database.Port),
			cfg.Database.Name,
		)
	}
	parsed, err := mysql.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("DSN inválido: %w", err)
	}
	return parsed.FormatDSN(), nil
}

// Connect retorna un pool de conexiones a MariaDB usando la configuración.
func Connect(cfg config.Config) (*sql.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping base de datos: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the personas table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS personas (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			dni VARCHAR(32) NOT NULL,
			nombre VARCHAR(100) NOT NULL,
			apellido VARCHAR(100) NOT NULL,
			hora_entrada VARCHAR(32) NOT NULL,
			mutual VARCHAR(100) NULL,
			atencion VARCHAR(100) NULL,
			terminado TINYINT NOT NULL DEFAULT 0,
			UNIQUE KEY uq_personas_dni (dni),
			KEY idx_personas_hora_entrada (hora_entrada)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`)
	return err
}

type columnMigration struct {
	column string
	ddl    string
}

// columnas agregadas después de la primera versión de la tabla
var personaMigrations = []columnMigration{
	{"mutual", "ALTER TABLE personas ADD COLUMN mutual VARCHAR(100) NULL"},
	{"atencion", "ALTER TABLE personas ADD COLUMN atencion VARCHAR(100) NULL"},
	{"terminado", "ALTER TABLE personas ADD COLUMN terminado TINYINT NOT NULL DEFAULT 0"},
}

// Migrate agrega las columnas que falten en una tabla personas existente.
// Es idempotente: si el esquema está al día no ejecuta ningún ALTER.
func Migrate(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = 'personas'
	`)
	if err != nil {
		return nil, fmt.Errorf("leer columnas de personas: %w", err)
	}
	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		existing[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var applied []string
	for _, m := range personaMigrations {
		if existing[m.column] {
			continue
		}
		if _, err := db.ExecContext(ctx, m.ddl); err != nil {
			return applied, fmt.Errorf("agregar columna %s: %w", m.column, err)
		}
		log.Printf("🛠️  Migrate: columna personas.%s agregada", m.column)
		applied = append(applied, m.column)
	}
	return applied, nil
}

// Prepare runs EnsureSchema then Migrate, honoring DB_SKIP_SCHEMA.
func Prepare(ctx context.Context, db *sql.DB, cfg config.Config) error {
	if cfg.SkipSchema {
		log.Printf("EnsureSchema: skipped (DB_SKIP_SCHEMA)")
		return nil
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if _, err := Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
