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

var _ repository.CompraRepository = (*CompraRepo)(nil)

// CompraRepo implementación del puerto de solicitudes de compra sobre PostgreSQL.
type CompraRepo struct {
	q Querier
}

// NewCompraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompraRepository(q Querier) *CompraRepo {
	return &CompraRepo{q: q}
}

// Create inserta la solicitud y deja ID y fecha asignados.
func (r *CompraRepo) Create(c *entity.SolicitudCompra) error {
	query := `
		INSERT INTO solicitudes_compra (producto, cantidad, motivo, prioridad, proveedor, fecha, estado)
		VALUES ($1, $2, $3, $4, $5, NOW(), $6)
		RETURNING id, fecha`
	err := r.q.QueryRow(context.Background(), query,
		c.Producto, c.Cantidad, c.Motivo, c.Prioridad, c.Proveedor, c.Estado,
	).Scan(&c.ID, &c.Fecha)
	if err != nil {
		return fmt.Errorf("insert solicitud compra: %w", err)
	}
	return nil
}

// List devuelve la cola ordenada por prioridad (Alta, Media, Baja) y fecha
// descendente, con filtros opcionales.
func (r *CompraRepo) List(estado, prioridad string) ([]*entity.SolicitudCompra, error) {
	query := `
		SELECT id, producto, cantidad, motivo, prioridad, proveedor, fecha, estado
		FROM solicitudes_compra WHERE 1=1`
	args := []any{}
	if estado != "" {
		args = append(args, estado)
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	if prioridad != "" {
		args = append(args, prioridad)
		query += fmt.Sprintf(" AND prioridad = $%d", len(args))
	}
	query += `
		ORDER BY CASE prioridad WHEN 'Alta' THEN 1 WHEN 'Media' THEN 2 ELSE 3 END,
		         fecha DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list solicitudes compra: %w", err)
	}
	defer rows.Close()

	var out []*entity.SolicitudCompra
	for rows.Next() {
		var c entity.SolicitudCompra
		if err := rows.Scan(&c.ID, &c.Producto, &c.Cantidad, &c.Motivo, &c.Prioridad, &c.Proveedor, &c.Fecha, &c.Estado); err != nil {
			return nil, fmt.Errorf("scan solicitud compra: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// GetByID devuelve una solicitud por ID (nil si no existe).
func (r *CompraRepo) GetByID(id int64) (*entity.SolicitudCompra, error) {
	query := `
		SELECT id, producto, cantidad, motivo, prioridad, proveedor, fecha, estado
		FROM solicitudes_compra WHERE id = $1`
	var c entity.SolicitudCompra
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Producto, &c.Cantidad, &c.Motivo, &c.Prioridad, &c.Proveedor, &c.Fecha, &c.Estado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solicitud compra: %w", err)
	}
	return &c, nil
}

// UpdateEstado cambia el estado de la solicitud.
func (r *CompraRepo) UpdateEstado(id int64, estado string) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE solicitudes_compra SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado compra: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la solicitud (borrado físico: la cola es consultiva).
func (r *CompraRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM solicitudes_compra WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete solicitud compra: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
