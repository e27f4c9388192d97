package entity

import "time"

// Estados de stock válidos para una fila de inventario.
const (
	EstadoDisponible = "disponible"
	EstadoStockBajo  = "stock bajo"
	EstadoAgotado    = "agotado"
	EstadoReservado  = "reservado"
)

// Inventario representa la fila de stock actual de un producto (1:1 con Producto).
// Stock es un contador desnormalizado; el libro de movimientos es la fuente de
// verdad de por qué cambió. EstadoBloqueado exime la fila de la recomputación
// automática de estado (usado para "reservado" manual).
type Inventario struct {
	ID              int64
	ProductoID      int64
	UbicacionID     *int64
	Stock           int
	EstadoStock     string
	EstadoBloqueado bool
	UpdatedAt       time.Time
}
