package entity

import "time"

// Solicitud es la cabecera de una entrega interna: retiro transaccional de
// productos del inventario a nombre de un departamento/solicitante.
type Solicitud struct {
	ID             int64
	DepartamentoID int64
	SolicitanteID  int64
	ResponsableID  int64 // usuario que entrega
	Comentario     string
	Fecha          time.Time
	Activo         bool
}

// DetalleSolicitud es una línea de entrega (producto + cantidad).
type DetalleSolicitud struct {
	ID          int64
	SolicitudID int64
	ProductoID  int64
	Cantidad    int // > 0
}

// SolicitudResumen es la proyección de listado con nombres resueltos.
type SolicitudResumen struct {
	ID           int64
	Fecha        time.Time
	Departamento string
	Solicitante  string
	Comentario   string
	Responsable  string
}

// LineaSolicitud es una línea con el producto resuelto (detalle de una solicitud).
type LineaSolicitud struct {
	Producto string
	Codigo   string
	Cantidad int
}
