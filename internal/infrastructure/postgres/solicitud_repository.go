package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

var _ repository.SolicitudRepository = (*SolicitudRepo)(nil)

// SolicitudRepo implementación del puerto de entregas sobre PostgreSQL (usable con pool o tx).
type SolicitudRepo struct {
	q Querier
}

// NewSolicitudRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSolicitudRepository(q Querier) *SolicitudRepo {
	return &SolicitudRepo{q: q}
}

// CreateCabecera inserta la cabecera de la entrega y devuelve el ID asignado.
func (r *SolicitudRepo) CreateCabecera(s *entity.Solicitud) (int64, error) {
	query := `
		INSERT INTO solicitudes (departamento_id, solicitante_id, responsable_id, comentario, fecha, activo)
		VALUES ($1, $2, $3, $4, NOW(), $5)
		RETURNING id, fecha`
	err := r.q.QueryRow(context.Background(), query,
		s.DepartamentoID, s.SolicitanteID, s.ResponsableID, s.Comentario, s.Activo,
	).Scan(&s.ID, &s.Fecha)
	if err != nil {
		return 0, fmt.Errorf("insert solicitud: %w", err)
	}
	return s.ID, nil
}

// CreateDetalle inserta una línea de la entrega.
func (r *SolicitudRepo) CreateDetalle(d *entity.DetalleSolicitud) error {
	query := `
		INSERT INTO detalle_solicitud (solicitud_id, producto_id, cantidad)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query, d.SolicitudID, d.ProductoID, d.Cantidad).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert detalle solicitud: %w", err)
	}
	return nil
}

const solicitudResumenSelect = `
	SELECT s.id, s.fecha,
	       COALESCE(d.nombre, 'N/A'),
	       COALESCE(so.nombre, 'N/A'),
	       s.comentario,
	       COALESCE(u.nombre_completo, 'N/A')
	FROM solicitudes s
	LEFT JOIN departamentos d ON d.id = s.departamento_id
	LEFT JOIN solicitantes so ON so.id = s.solicitante_id
	LEFT JOIN usuarios u ON u.id = s.responsable_id`

// List devuelve el historial de entregas (más recientes primero) con filtros opcionales.
func (r *SolicitudRepo) List(filtro repository.FiltroSolicitudes) ([]*entity.SolicitudResumen, error) {
	query := solicitudResumenSelect + ` WHERE s.activo = TRUE`
	args := []any{}
	if filtro.Busqueda != "" {
		args = append(args, "%"+filtro.Busqueda+"%")
		query += fmt.Sprintf(" AND s.comentario ILIKE $%d", len(args))
	}
	if filtro.Departamento != "" {
		args = append(args, filtro.Departamento)
		query += fmt.Sprintf(" AND d.nombre = $%d", len(args))
	}
	if filtro.Desde != nil {
		args = append(args, *filtro.Desde)
		query += fmt.Sprintf(" AND s.fecha >= $%d", len(args))
	}
	if filtro.Hasta != nil {
		args = append(args, *filtro.Hasta)
		query += fmt.Sprintf(" AND s.fecha <= $%d", len(args))
	}
	query += " ORDER BY s.fecha DESC, s.id DESC"
	if filtro.Limit > 0 {
		args = append(args, filtro.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list solicitudes: %w", err)
	}
	defer rows.Close()

	var out []*entity.SolicitudResumen
	for rows.Next() {
		var s entity.SolicitudResumen
		if err := rows.Scan(&s.ID, &s.Fecha, &s.Departamento, &s.Solicitante, &s.Comentario, &s.Responsable); err != nil {
			return nil, fmt.Errorf("scan solicitud: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Get devuelve una cabecera por ID (nil si no existe).
func (r *SolicitudRepo) Get(id int64) (*entity.SolicitudResumen, error) {
	query := solicitudResumenSelect + ` WHERE s.id = $1`
	var s entity.SolicitudResumen
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Fecha, &s.Departamento, &s.Solicitante, &s.Comentario, &s.Responsable,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solicitud: %w", err)
	}
	return &s, nil
}

// Lineas devuelve las líneas de una entrega con el producto resuelto.
func (r *SolicitudRepo) Lineas(solicitudID int64) ([]*entity.LineaSolicitud, error) {
	query := `
		SELECT p.nombre, p.codigo, ds.cantidad
		FROM detalle_solicitud ds
		JOIN productos p ON p.id = ds.producto_id
		WHERE ds.solicitud_id = $1
		ORDER BY ds.id`
	rows, err := r.q.Query(context.Background(), query, solicitudID)
	if err != nil {
		return nil, fmt.Errorf("lineas solicitud: %w", err)
	}
	defer rows.Close()

	var out []*entity.LineaSolicitud
	for rows.Next() {
		var l entity.LineaSolicitud
		if err := rows.Scan(&l.Producto, &l.Codigo, &l.Cantidad); err != nil {
			return nil, fmt.Errorf("scan linea: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
