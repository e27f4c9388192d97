package entity

import "time"

// Tipos de movimiento del libro de inventario.
const (
	MovimientoEntrada = "Entrada"
	MovimientoSalida  = "Salida"
)

// Movimiento es un asiento inmutable del libro de movimientos: nunca se
// actualiza ni se borra. Cantidad siempre es positiva; el tipo lleva el signo.
type Movimiento struct {
	ID            int64
	ProductoID    int64
	Tipo          string // Entrada | Salida
	Cantidad      int    // magnitud, > 0
	ResponsableID *int64 // usuario, nil si no resuelve
	Referencia    string
	TransaccionID string // correlaciona asientos de una misma operación
	Fecha         time.Time
}

// MovimientoDetalle es la proyección de reporte (cronológico inverso) con
// nombres resueltos de producto y responsable.
type MovimientoDetalle struct {
	ID          int64
	Fecha       time.Time
	Tipo        string
	Producto    string
	Cantidad    int
	Responsable string // "N/A" si el asiento no tiene responsable
	Referencia  string
}
