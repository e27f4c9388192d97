package dto

import "time"

// CreateCompraRequest entrada para crear una solicitud de compra (consultiva).
type CreateCompraRequest struct {
	Producto  string `json:"producto" validate:"required,max=100"`
	Cantidad  int    `json:"cantidad" validate:"required,gt=0"`
	Motivo    string `json:"motivo" validate:"required,max=50"`
	Prioridad string `json:"prioridad" validate:"required"`
	Proveedor string `json:"proveedor"`
}

// UpdateCompraEstadoRequest cambia el estado de una solicitud de compra.
type UpdateCompraEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// CompraResponse salida de una solicitud de compra.
type CompraResponse struct {
	ID        int64     `json:"id"`
	Producto  string    `json:"producto"`
	Cantidad  int       `json:"cantidad"`
	Motivo    string    `json:"motivo"`
	Prioridad string    `json:"prioridad"`
	Proveedor string    `json:"proveedor"`
	Fecha     time.Time `json:"fecha"`
	Estado    string    `json:"estado"`
}
