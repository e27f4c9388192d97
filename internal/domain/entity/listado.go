package entity

// FilaInventario es la proyección del listado de inventario: producto con su
// fila de stock y nombres de marca/categoría/ubicación resueltos ("N/A" si no hay).
type FilaInventario struct {
	ProductoID      int64
	Codigo          string
	Nombre          string
	Marca           string
	Categoria       string
	Stock           int
	StockMinimo     int
	Ubicacion       string
	EstadoStock     string
	EstadoBloqueado bool
}

// AlertaStock es una fila del reporte de stock bajo (stock <= mínimo).
type AlertaStock struct {
	ProductoID  int64
	Producto    string
	Categoria   string
	Stock       int
	StockMinimo int
}

// Discrepancia reporta un producto cuyo contador de stock no coincide con la
// suma del libro (Σ Entradas − Σ Salidas).
type Discrepancia struct {
	ProductoID  int64
	Producto    string
	Stock       int
	SumaLibro   int
	Diferencia  int
}
