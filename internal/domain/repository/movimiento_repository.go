package repository

import (
	"time"

	"github.com/usm-ti/almacen-api/internal/domain/entity"
)

// FiltroMovimientos filtros opcionales del reporte de movimientos.
type FiltroMovimientos struct {
	Tipo       string // Entrada | Salida, vacío = todos
	ProductoID int64  // 0 = todos
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int
	Offset     int
}

// MovimientoRepository define el puerto del libro de movimientos (append-only).
// No existe Update ni Delete: los asientos son hechos inmutables.
type MovimientoRepository interface {
	Create(m *entity.Movimiento) error
	List(filtro FiltroMovimientos) ([]*entity.MovimientoDetalle, error)
	ListByProducto(productoID int64) ([]*entity.Movimiento, error)
}
