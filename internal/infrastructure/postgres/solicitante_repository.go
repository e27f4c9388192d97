package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

var _ repository.SolicitanteRepository = (*SolicitanteRepo)(nil)

// SolicitanteRepo implementación del puerto de solicitantes sobre PostgreSQL.
type SolicitanteRepo struct {
	q Querier
}

// NewSolicitanteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSolicitanteRepository(q Querier) *SolicitanteRepo {
	return &SolicitanteRepo{q: q}
}

// List devuelve los solicitantes ordenados por nombre, todos o solo activos.
func (r *SolicitanteRepo) List(soloActivos bool) ([]*entity.Solicitante, error) {
	query := `SELECT id, cedula, nombre, departamento_id, activo FROM solicitantes`
	if soloActivos {
		query += ` WHERE activo = TRUE`
	}
	query += ` ORDER BY nombre`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list solicitantes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Solicitante
	for rows.Next() {
		var s entity.Solicitante
		if err := rows.Scan(&s.ID, &s.Cedula, &s.Nombre, &s.DepartamentoID, &s.Activo); err != nil {
			return nil, fmt.Errorf("scan solicitante: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// GetByID devuelve un solicitante por ID (nil si no existe).
func (r *SolicitanteRepo) GetByID(id int64) (*entity.Solicitante, error) {
	query := `SELECT id, cedula, nombre, departamento_id, activo FROM solicitantes WHERE id = $1`
	var s entity.Solicitante
	err := r.q.QueryRow(context.Background(), query, id).Scan(&s.ID, &s.Cedula, &s.Nombre, &s.DepartamentoID, &s.Activo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solicitante: %w", err)
	}
	return &s, nil
}

// Add inserta un solicitante y deja el ID asignado.
func (r *SolicitanteRepo) Add(s *entity.Solicitante) error {
	query := `
		INSERT INTO solicitantes (cedula, nombre, departamento_id, activo)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query, s.Cedula, s.Nombre, s.DepartamentoID, s.Activo).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isFKViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert solicitante: %w", err)
	}
	return nil
}

// SetActivo activa o desactiva un solicitante.
func (r *SolicitanteRepo) SetActivo(id int64, activo bool) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE solicitantes SET activo = $2 WHERE id = $1`, id, activo)
	if err != nil {
		return fmt.Errorf("set activo solicitante: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
