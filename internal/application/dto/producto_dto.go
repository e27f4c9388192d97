package dto

// CreateProductoRequest entrada para crear un producto. Marca, categoría y
// ubicación se pasan por nombre y deben resolver a filas activas.
type CreateProductoRequest struct {
	Codigo       string `json:"codigo" validate:"required,max=50"`
	Nombre       string `json:"nombre" validate:"required,max=100"`
	Marca        string `json:"marca"`
	Categoria    string `json:"categoria"`
	Ubicacion    string `json:"ubicacion"`
	StockInicial int    `json:"stock_inicial" validate:"min=0"`
	StockMinimo  int    `json:"stock_minimo" validate:"min=0"`
}

// UpdateProductoRequest entrada para actualizar un producto. No incluye stock:
// en edición el stock se relee de la base y se mantiene constante.
type UpdateProductoRequest struct {
	Codigo      string `json:"codigo" validate:"required,max=50"`
	Nombre      string `json:"nombre" validate:"required,max=100"`
	Marca       string `json:"marca"`
	Categoria   string `json:"categoria"`
	Ubicacion   string `json:"ubicacion"`
	StockMinimo int    `json:"stock_minimo" validate:"min=0"`
	// Estado permite fijar manualmente "reservado"; bloquea la fila contra el
	// barrido automático hasta que se cambie a otro estado.
	Estado string `json:"estado"`
}

// ProductoResponse salida de una fila de inventario (producto + stock).
type ProductoResponse struct {
	ID          int64  `json:"id"`
	Codigo      string `json:"codigo"`
	Nombre      string `json:"nombre"`
	Marca       string `json:"marca"`
	Categoria   string `json:"categoria"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stock_minimo"`
	Ubicacion   string `json:"ubicacion"`
	EstadoStock string `json:"estado_stock"`
}

// AddStockRequest entrada para sumar stock a un producto existente.
type AddStockRequest struct {
	Cantidad int `json:"cantidad" validate:"required,gt=0"`
}
