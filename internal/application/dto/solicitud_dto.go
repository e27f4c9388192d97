package dto

import "time"

// LineaEntregaRequest una línea del carrito de entrega.
type LineaEntregaRequest struct {
	ProductoID int64 `json:"producto_id" validate:"required"`
	Cantidad   int   `json:"cantidad" validate:"required,gt=0"`
}

// RegistrarEntregaRequest body para POST /api/solicitudes.
type RegistrarEntregaRequest struct {
	DepartamentoID int64                 `json:"departamento_id" validate:"required"`
	SolicitanteID  int64                 `json:"solicitante_id" validate:"required"`
	Comentario     string                `json:"comentario" validate:"required"`
	Lineas         []LineaEntregaRequest `json:"lineas" validate:"required,min=1"`
}

// SolicitudResponse cabecera de entrega en listados.
type SolicitudResponse struct {
	ID           int64     `json:"id"`
	Fecha        time.Time `json:"fecha"`
	Departamento string    `json:"departamento"`
	Solicitante  string    `json:"solicitante"`
	Comentario   string    `json:"comentario"`
	Responsable  string    `json:"responsable"`
}

// LineaEntregaResponse línea de una entrega con el producto resuelto.
type LineaEntregaResponse struct {
	Producto string `json:"producto"`
	Codigo   string `json:"codigo"`
	Cantidad int    `json:"cantidad"`
}

// SolicitudDetalleResponse cabecera + líneas de una entrega.
type SolicitudDetalleResponse struct {
	SolicitudResponse
	Lineas []LineaEntregaResponse `json:"lineas"`
}
