package entity

// Catalogo representa una fila de una tabla de referencia simple
// (categorías, marcas, ubicaciones, departamentos).
type Catalogo struct {
	ID     int64
	Nombre string
	Activo bool
}

// Solicitante es la persona que recibe una entrega, adscrita a un departamento.
type Solicitante struct {
	ID             int64
	Cedula         string
	Nombre         string
	DepartamentoID *int64
	Activo         bool
}
