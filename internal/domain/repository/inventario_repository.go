package repository

import "github.com/usm-ti/almacen-api/internal/domain/entity"

// InventarioRepository define el puerto para la fila de stock por producto.
// Solo el servicio de inventario escribe Stock; el resto del sistema lee.
type InventarioRepository interface {
	GetByProducto(productoID int64) (*entity.Inventario, error)
	Insert(inv *entity.Inventario) error
	Update(inv *entity.Inventario) error
	// AddStock suma cantidad con un UPDATE relativo (sin carrera de lectura-escritura).
	AddStock(productoID int64, cantidad int) error
	// DescontarStock resta cantidad solo si el stock resultante queda >= 0.
	// Devuelve false (cero filas afectadas) cuando no hay stock suficiente.
	DescontarStock(productoID int64, cantidad int) (bool, error)
	UpdateEstado(productoID int64, estado string) error
	// ListBajoMinimo lista productos activos con stock <= stock_minimo.
	ListBajoMinimo() ([]*entity.AlertaStock, error)
	// Discrepancias compara el contador de stock contra la suma del libro de
	// movimientos por producto y devuelve las filas que no cuadran.
	Discrepancias() ([]*entity.Discrepancia, error)
}
