package repository

import "github.com/usm-ti/almacen-api/internal/domain/entity"

// FiltroInventario filtros opcionales para el listado de inventario.
type FiltroInventario struct {
	Busqueda  string // sobre nombre o código, case-insensitive
	Categoria string // nombre exacto, vacío = todas
	Estado    string // estado_stock exacto, vacío = todos
}

// ProductoRepository define el puerto de persistencia para Producto (DIP).
type ProductoRepository interface {
	Create(p *entity.Producto) error
	GetByID(id int64) (*entity.Producto, error)
	GetByCodigo(codigo string) (*entity.Producto, error)
	GetNombre(id int64) (string, error)
	Update(p *entity.Producto) error
	// SoftDelete marca el producto como inactivo; nunca se borra físicamente.
	SoftDelete(id int64) error
	ListInventario(filtro FiltroInventario) ([]*entity.FilaInventario, error)
}
