package dto

// SaveProveedorRequest entrada para crear o actualizar un proveedor.
type SaveProveedorRequest struct {
	Nombre        string   `json:"nombre" validate:"required,max=100"`
	Contacto      string   `json:"contacto"`
	Telefono      string   `json:"telefono"`
	Email         string   `json:"email"`
	Direccion     string   `json:"direccion"`
	RedesSociales string   `json:"redes_sociales"`
	Valoracion    *int     `json:"valoracion" validate:"omitempty,min=1,max=5"`
	ManejoPrecios string   `json:"manejo_precios"`
	Comentarios   string   `json:"comentarios"`
	Categorias    []string `json:"categorias"`
}

// ProveedorResponse salida de un proveedor.
type ProveedorResponse struct {
	ID            int64    `json:"id"`
	Nombre        string   `json:"nombre"`
	Contacto      string   `json:"contacto"`
	Telefono      string   `json:"telefono"`
	Email         string   `json:"email"`
	Direccion     string   `json:"direccion"`
	RedesSociales string   `json:"redes_sociales"`
	Valoracion    *int     `json:"valoracion"`
	ManejoPrecios string   `json:"manejo_precios"`
	Comentarios   string   `json:"comentarios"`
	Categorias    []string `json:"categorias"`
}
