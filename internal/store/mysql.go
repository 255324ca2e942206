package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/yourorg/turnero/internal/models"
)

// código de MySQL/MariaDB para ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

const personaColumns = "id, dni, nombre, apellido, hora_entrada, mutual, atencion, terminado"

var _ Store = (*MySQL)(nil)

// MySQL guarda personas en MariaDB/MySQL
type MySQL struct {
	db *sql.DB
}

func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{db: db}
}

func (s *MySQL) List(ctx context.Context) ([]models.Persona, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+personaColumns+" FROM personas ORDER BY hora_entrada DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	personas := []models.Persona{}
	for rows.Next() {
		var p models.Persona
		if err := rows.Scan(
			&p.ID,
			&p.DNI,
			&p.Nombre,
			&p.Apellido,
			&p.HoraEntrada,
			&p.Mutual,
			&p.Atencion,
			&p.Terminado,
		); err != nil {
			return nil, err
		}
		personas = append(personas, p)
	}
	return personas, rows.Err()
}

func (s *MySQL) Create(ctx context.Context, p models.Persona) (models.Persona, error) {
	var existing int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM personas WHERE dni = ?", p.DNI).Scan(&existing)
	switch {
	case err == nil:
		return models.Persona{}, ErrDuplicateDNI
	case !errors.Is(err, sql.ErrNoRows):
		return models.Persona{}, fmt.Errorf("buscar dni: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO personas (dni, nombre, apellido, hora_entrada, mutual, atencion, terminado)
		VALUES (?, ?, ?, ?, ?, ?, 0)
	`, p.DNI, p.Nombre, p.Apellido, p.HoraEntrada, p.Mutual, p.Atencion)
	if err != nil {
		// otra alta con el mismo dni ganó la carrera después del SELECT
		if isDuplicateEntry(err) {
			return models.Persona{}, ErrDuplicateDNI
		}
		return models.Persona{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Persona{}, err
	}
	p.ID = id
	p.Terminado = 0
	return p, nil
}

func (s *MySQL) Finish(ctx context.Context, id int64) error {
	// MySQL informa 0 filas afectadas si terminado ya era 1, por eso se
	// verifica la existencia antes del UPDATE.
	var found int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM personas WHERE id = ?", id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, "UPDATE personas SET terminado = 1 WHERE id = ?", id)
	return err
}

func (s *MySQL) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM personas WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQL) Stats(ctx context.Context) (models.PersonaStats, error) {
	stats := models.PersonaStats{PorAtencion: map[string]int{}}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(terminado = 1), 0)
		FROM personas
	`).Scan(&stats.Total, &stats.Terminados)
	if err != nil {
		return stats, err
	}
	stats.EnEspera = stats.Total - stats.Terminados

	rows, err := s.db.QueryContext(ctx, `
		SELECT atencion, COUNT(*)
		FROM personas
		GROUP BY atencion
	`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var atencion sql.NullString
		var count int
		if err := rows.Scan(&atencion, &count); err != nil {
			return stats, err
		}
		key := models.SinAtencion
		if atencion.Valid && atencion.String != "" {
			key = atencion.String
		}
		stats.PorAtencion[key] += count
	}
	return stats, rows.Err()
}

func (s *MySQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
