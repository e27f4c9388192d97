package repository

import "github.com/usm-ti/almacen-api/internal/domain/entity"

// CompraRepository define el puerto para la cola consultiva de compras.
type CompraRepository interface {
	Create(c *entity.SolicitudCompra) error
	// List aplica filtros opcionales y ordena por prioridad (Alta, Media, Baja)
	// y fecha descendente.
	List(estado, prioridad string) ([]*entity.SolicitudCompra, error)
	GetByID(id int64) (*entity.SolicitudCompra, error)
	UpdateEstado(id int64, estado string) error
	Delete(id int64) error
}
