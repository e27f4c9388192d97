package entity

import "time"

// Prioridades de una solicitud de compra.
const (
	PrioridadAlta  = "Alta"
	PrioridadMedia = "Media"
	PrioridadBaja  = "Baja"
)

// Estados de una solicitud de compra.
const (
	CompraPendiente  = "Pendiente"
	CompraAprobado   = "Aprobado"
	CompraRechazado  = "Rechazado"
	CompraEnProceso  = "En proceso"
	CompraCompletado = "Completado"
	CompraCancelado  = "Cancelado"
)

// SolicitudCompra es una petición de reabastecimiento puramente consultiva:
// no tiene relación con Inventario ni Movimiento.
type SolicitudCompra struct {
	ID        int64
	Producto  string // texto libre, no FK
	Cantidad  int
	Motivo    string
	Prioridad string // Alta | Media | Baja
	Proveedor string // opcional
	Fecha     time.Time
	Estado    string
}

// PrioridadValida indica si el valor es una prioridad conocida.
func PrioridadValida(p string) bool {
	return p == PrioridadAlta || p == PrioridadMedia || p == PrioridadBaja
}

// EstadoCompraValido indica si el valor es un estado conocido.
func EstadoCompraValido(e string) bool {
	switch e {
	case CompraPendiente, CompraAprobado, CompraRechazado, CompraEnProceso, CompraCompletado, CompraCancelado:
		return true
	}
	return false
}
