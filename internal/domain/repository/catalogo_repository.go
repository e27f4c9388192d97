package repository

import "github.com/usm-ti/almacen-api/internal/domain/entity"

// CatalogoRepository define el puerto para una tabla de referencia simple
// (categorías, marcas, ubicaciones, departamentos). La capacidad de
// soft-delete es un marcador explícito resuelto al construir el adaptador,
// no una introspección del esquema en tiempo de ejecución.
type CatalogoRepository interface {
	List(soloActivos bool) ([]*entity.Catalogo, error)
	GetByID(id int64) (*entity.Catalogo, error)
	GetPorNombre(nombre string, soloActivos bool) (*entity.Catalogo, error)
	Add(nombre string) (*entity.Catalogo, error)
	Rename(id int64, nombre string) error
	// SetActivo devuelve ErrSinSoftDelete si la tabla no declara la capacidad.
	SetActivo(id int64, activo bool) error
	SoportaSoftDelete() bool
}

// SolicitanteRepository define el puerto para solicitantes de entregas.
type SolicitanteRepository interface {
	List(soloActivos bool) ([]*entity.Solicitante, error)
	GetByID(id int64) (*entity.Solicitante, error)
	Add(s *entity.Solicitante) error
	SetActivo(id int64, activo bool) error
}
