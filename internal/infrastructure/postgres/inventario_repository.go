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

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo implementación del puerto InventarioRepository sobre PostgreSQL (usable con pool o tx).
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

// GetByProducto obtiene la fila de stock de un producto (nil si no existe).
func (r *InventarioRepo) GetByProducto(productoID int64) (*entity.Inventario, error) {
	query := `
		SELECT id, producto_id, ubicacion_id, stock, estado_stock, estado_bloqueado, updated_at
		FROM inventario WHERE producto_id = $1`
	var inv entity.Inventario
	err := r.q.QueryRow(context.Background(), query, productoID).Scan(
		&inv.ID, &inv.ProductoID, &inv.UbicacionID, &inv.Stock,
		&inv.EstadoStock, &inv.EstadoBloqueado, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return &inv, nil
}

// Insert crea la fila de stock de un producto (1:1).
func (r *InventarioRepo) Insert(inv *entity.Inventario) error {
	query := `
		INSERT INTO inventario (producto_id, ubicacion_id, stock, estado_stock, estado_bloqueado, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		inv.ProductoID, inv.UbicacionID, inv.Stock, inv.EstadoStock, inv.EstadoBloqueado,
	).Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventario: %w", err)
	}
	return nil
}

// Update reescribe ubicación, stock y estado de la fila.
func (r *InventarioRepo) Update(inv *entity.Inventario) error {
	query := `
		UPDATE inventario SET ubicacion_id = $2, stock = $3, estado_stock = $4, estado_bloqueado = $5, updated_at = NOW()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.UbicacionID, inv.Stock, inv.EstadoStock, inv.EstadoBloqueado,
	)
	if err != nil {
		return fmt.Errorf("update inventario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddStock suma cantidad con un UPDATE relativo: sin lectura previa, sin
// carrera entre llamadas concurrentes.
func (r *InventarioRepo) AddStock(productoID int64, cantidad int) error {
	query := `UPDATE inventario SET stock = stock + $2, updated_at = NOW() WHERE producto_id = $1`
	cmd, err := r.q.Exec(context.Background(), query, productoID, cantidad)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DescontarStock resta cantidad solo si el resultado queda >= 0. Cero filas
// afectadas significa stock insuficiente (o producto sin fila): devuelve false.
func (r *InventarioRepo) DescontarStock(productoID int64, cantidad int) (bool, error) {
	query := `
		UPDATE inventario SET stock = stock - $2, updated_at = NOW()
		WHERE producto_id = $1 AND stock >= $2`
	cmd, err := r.q.Exec(context.Background(), query, productoID, cantidad)
	if err != nil {
		return false, fmt.Errorf("descontar stock: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// UpdateEstado fija el estado de stock sin tocar el contador.
func (r *InventarioRepo) UpdateEstado(productoID int64, estado string) error {
	query := `UPDATE inventario SET estado_stock = $2, updated_at = NOW() WHERE producto_id = $1`
	cmd, err := r.q.Exec(context.Background(), query, productoID, estado)
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBajoMinimo lista productos activos con stock <= stock_minimo, los más
// críticos primero.
func (r *InventarioRepo) ListBajoMinimo() ([]*entity.AlertaStock, error) {
	query := `
		SELECT p.id, p.nombre, COALESCE(c.nombre, 'N/A'), i.stock, p.stock_minimo
		FROM inventario i
		JOIN productos p ON p.id = i.producto_id
		LEFT JOIN categorias c ON c.id = p.categoria_id
		WHERE p.activo = TRUE AND i.stock <= p.stock_minimo
		ORDER BY i.stock - p.stock_minimo, p.nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list bajo minimo: %w", err)
	}
	defer rows.Close()

	var alertas []*entity.AlertaStock
	for rows.Next() {
		var a entity.AlertaStock
		if err := rows.Scan(&a.ProductoID, &a.Producto, &a.Categoria, &a.Stock, &a.StockMinimo); err != nil {
			return nil, fmt.Errorf("scan alerta: %w", err)
		}
		alertas = append(alertas, &a)
	}
	return alertas, rows.Err()
}

// Discrepancias compara el contador de stock contra la suma del libro
// (Σ Entradas − Σ Salidas) y devuelve las filas que no cuadran. Productos sin
// asientos comparan contra cero.
func (r *InventarioRepo) Discrepancias() ([]*entity.Discrepancia, error) {
	query := `
		SELECT p.id, p.nombre, i.stock, COALESCE(l.suma, 0), i.stock - COALESCE(l.suma, 0)
		FROM inventario i
		JOIN productos p ON p.id = i.producto_id
		LEFT JOIN (
			SELECT producto_id,
			       SUM(CASE WHEN tipo = 'Entrada' THEN cantidad ELSE -cantidad END) AS suma
			FROM movimientos
			GROUP BY producto_id
		) l ON l.producto_id = i.producto_id
		WHERE p.activo = TRUE AND i.stock <> COALESCE(l.suma, 0)
		ORDER BY p.nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("discrepancias: %w", err)
	}
	defer rows.Close()

	var out []*entity.Discrepancia
	for rows.Next() {
		var d entity.Discrepancia
		if err := rows.Scan(&d.ProductoID, &d.Producto, &d.Stock, &d.SumaLibro, &d.Diferencia); err != nil {
			return nil, fmt.Errorf("scan discrepancia: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
