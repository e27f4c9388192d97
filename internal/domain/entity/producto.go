package entity

// Producto representa un artículo del catálogo de almacén.
// El stock vive en Inventario (1:1); aquí solo metadatos y umbral de reorden.
type Producto struct {
	ID          int64
	Codigo      string // código único, letras/números/guiones
	Nombre      string
	MarcaID     *int64
	CategoriaID *int64
	StockMinimo int // umbral de reorden, >= 0
	Activo      bool
}
