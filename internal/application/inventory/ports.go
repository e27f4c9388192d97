package inventory

import (
	"context"

	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que inventario y libro de
// movimientos se escriban juntos o no se escriban.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error) error

	// RunEntrega añade el repositorio de solicitudes a la transacción
	// (cabecera + detalles + descuentos + asientos, todo o nada).
	RunEntrega(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
		solicitudRepo repository.SolicitudRepository,
	) error) error
}
