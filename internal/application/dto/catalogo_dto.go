package dto

// CatalogoItemResponse fila de una tabla de referencia.
type CatalogoItemResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

// AddCatalogoRequest agrega un valor a una tabla de referencia.
type AddCatalogoRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
}

// SetActivoRequest activa o desactiva una fila.
type SetActivoRequest struct {
	Activo bool `json:"activo"`
}

// AddSolicitanteRequest agrega un solicitante.
type AddSolicitanteRequest struct {
	Cedula         string `json:"cedula" validate:"required,max=20"`
	Nombre         string `json:"nombre" validate:"required,max=100"`
	DepartamentoID *int64 `json:"departamento_id"`
}

// SolicitanteResponse salida de un solicitante.
type SolicitanteResponse struct {
	ID             int64  `json:"id"`
	Cedula         string `json:"cedula"`
	Nombre         string `json:"nombre"`
	DepartamentoID *int64 `json:"departamento_id"`
	Activo         bool   `json:"activo"`
}
