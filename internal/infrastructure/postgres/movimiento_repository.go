package postgres

import (
	"context"
	"fmt"

	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación del puerto del libro de movimientos sobre
// PostgreSQL (usable con pool o tx). Solo inserta y lee: el libro es append-only.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create inserta un asiento. La fecha la asigna la base al insertar.
func (r *MovimientoRepo) Create(m *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (producto_id, tipo, cantidad, responsable_id, referencia, transaccion_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, fecha`
	err := r.q.QueryRow(context.Background(), query,
		m.ProductoID, m.Tipo, m.Cantidad, m.ResponsableID, m.Referencia, m.TransaccionID,
	).Scan(&m.ID, &m.Fecha)
	if err != nil {
		if isFKViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// List devuelve el reporte cronológico inverso con nombres resueltos y
// filtros opcionales. Responsable NULL sale como "N/A".
func (r *MovimientoRepo) List(filtro repository.FiltroMovimientos) ([]*entity.MovimientoDetalle, error) {
	query := `
		SELECT m.id, m.fecha, m.tipo, p.nombre, m.cantidad,
		       COALESCE(u.nombre_completo, 'N/A'), m.referencia
		FROM movimientos m
		JOIN productos p ON p.id = m.producto_id
		LEFT JOIN usuarios u ON u.id = m.responsable_id
		WHERE 1=1`
	args := []any{}
	if filtro.Tipo != "" {
		args = append(args, filtro.Tipo)
		query += fmt.Sprintf(" AND m.tipo = $%d", len(args))
	}
	if filtro.ProductoID != 0 {
		args = append(args, filtro.ProductoID)
		query += fmt.Sprintf(" AND m.producto_id = $%d", len(args))
	}
	if filtro.Desde != nil {
		args = append(args, *filtro.Desde)
		query += fmt.Sprintf(" AND m.fecha >= $%d", len(args))
	}
	if filtro.Hasta != nil {
		args = append(args, *filtro.Hasta)
		query += fmt.Sprintf(" AND m.fecha <= $%d", len(args))
	}
	query += " ORDER BY m.fecha DESC, m.id DESC"
	if filtro.Limit > 0 {
		args = append(args, filtro.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filtro.Offset > 0 {
		args = append(args, filtro.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var out []*entity.MovimientoDetalle
	for rows.Next() {
		var m entity.MovimientoDetalle
		if err := rows.Scan(&m.ID, &m.Fecha, &m.Tipo, &m.Producto, &m.Cantidad, &m.Responsable, &m.Referencia); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ListByProducto devuelve los asientos crudos de un producto en orden
// cronológico (para auditoría y reconciliación).
func (r *MovimientoRepo) ListByProducto(productoID int64) ([]*entity.Movimiento, error) {
	query := `
		SELECT id, producto_id, tipo, cantidad, responsable_id, referencia, transaccion_id, fecha
		FROM movimientos WHERE producto_id = $1
		ORDER BY fecha, id`
	rows, err := r.q.Query(context.Background(), query, productoID)
	if err != nil {
		return nil, fmt.Errorf("list movimientos producto: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.ResponsableID, &m.Referencia, &m.TransaccionID, &m.Fecha); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
