package repository

import "github.com/usm-ti/almacen-api/internal/domain/entity"

// FiltroProveedores filtros opcionales del listado de proveedores.
type FiltroProveedores struct {
	Categoria     string // nombre exacto, vacío = todas
	Valoracion    int    // 1..5, 0 = todas
	ManejoPrecios string // Bajo | Medio | Alto, vacío = todos
}

// ProveedorRepository define el puerto de persistencia para proveedores.
type ProveedorRepository interface {
	Create(p *entity.Proveedor) error
	GetByID(id int64) (*entity.Proveedor, error)
	GetByNombre(nombre string) (*entity.Proveedor, error)
	Update(p *entity.Proveedor) error
	SoftDelete(id int64) error
	List(filtro FiltroProveedores) ([]*entity.Proveedor, error)
	// SetCategorias reemplaza el conjunto de categorías asociadas.
	SetCategorias(proveedorID int64, categoriaIDs []int64) error
}
