package entity

// Manejo de precios de un proveedor.
const (
	PreciosBajo  = "Bajo"
	PreciosMedio = "Medio"
	PreciosAlto  = "Alto"
)

// Proveedor representa un proveedor del catálogo de compras.
type Proveedor struct {
	ID            int64
	Nombre        string
	Contacto      string
	Telefono      string
	Email         string
	Direccion     string
	RedesSociales string
	Valoracion    *int   // 1..5, nil = sin valoración
	ManejoPrecios string // Bajo | Medio | Alto, vacío = no informado
	Comentarios   string
	Activo        bool
	Categorias    []string // nombres de categorías asociadas
}
