package repository

import (
	"time"

	"github.com/usm-ti/almacen-api/internal/domain/entity"
)

// FiltroSolicitudes filtros opcionales del listado de entregas.
type FiltroSolicitudes struct {
	Busqueda     string // sobre el comentario, case-insensitive
	Departamento string // nombre exacto, vacío = todos
	Desde        *time.Time
	Hasta        *time.Time
	Limit        int
}

// SolicitudRepository define el puerto de persistencia para entregas internas.
type SolicitudRepository interface {
	// CreateCabecera inserta la cabecera y devuelve el ID asignado.
	CreateCabecera(s *entity.Solicitud) (int64, error)
	CreateDetalle(d *entity.DetalleSolicitud) error
	List(filtro FiltroSolicitudes) ([]*entity.SolicitudResumen, error)
	Get(id int64) (*entity.SolicitudResumen, error)
	Lineas(solicitudID int64) ([]*entity.LineaSolicitud, error)
}
