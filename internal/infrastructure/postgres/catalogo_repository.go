package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

var _ repository.CatalogoRepository = (*CatalogoRepo)(nil)

// CatalogoRepo implementación genérica del puerto de tablas de referencia
// (categorías, marcas, ubicaciones, departamentos). La tabla y la capacidad
// de soft-delete se fijan al construir el adaptador; nada se introspecciona
// del esquema en tiempo de ejecución.
type CatalogoRepo struct {
	q                 Querier
	tabla             string
	soportaSoftDelete bool
}

// NewCatalogoRepository construye el adaptador para una tabla concreta.
// El nombre de tabla viene del cableado de la app, nunca de entrada de usuario.
func NewCatalogoRepository(q Querier, tabla string, soportaSoftDelete bool) *CatalogoRepo {
	return &CatalogoRepo{q: q, tabla: tabla, soportaSoftDelete: soportaSoftDelete}
}

// List devuelve las filas ordenadas por nombre, todas o solo activas.
func (r *CatalogoRepo) List(soloActivos bool) ([]*entity.Catalogo, error) {
	query := fmt.Sprintf(`SELECT id, nombre, activo FROM %s`, r.tabla)
	if soloActivos {
		query += ` WHERE activo = TRUE`
	}
	query += ` ORDER BY nombre`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.tabla, err)
	}
	defer rows.Close()

	var out []*entity.Catalogo
	for rows.Next() {
		var c entity.Catalogo
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Activo); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.tabla, err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// GetByID devuelve una fila por ID (nil si no existe).
func (r *CatalogoRepo) GetByID(id int64) (*entity.Catalogo, error) {
	query := fmt.Sprintf(`SELECT id, nombre, activo FROM %s WHERE id = $1`, r.tabla)
	var c entity.Catalogo
	err := r.q.QueryRow(context.Background(), query, id).Scan(&c.ID, &c.Nombre, &c.Activo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.tabla, err)
	}
	return &c, nil
}

// GetPorNombre devuelve una fila por nombre exacto, opcionalmente solo si
// está activa (nil si no existe).
func (r *CatalogoRepo) GetPorNombre(nombre string, soloActivos bool) (*entity.Catalogo, error) {
	query := fmt.Sprintf(`SELECT id, nombre, activo FROM %s WHERE nombre = $1`, r.tabla)
	if soloActivos {
		query += ` AND activo = TRUE`
	}
	var c entity.Catalogo
	err := r.q.QueryRow(context.Background(), query, nombre).Scan(&c.ID, &c.Nombre, &c.Activo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s por nombre: %w", r.tabla, err)
	}
	return &c, nil
}

// Add inserta un valor nuevo (activo).
func (r *CatalogoRepo) Add(nombre string) (*entity.Catalogo, error) {
	query := fmt.Sprintf(`INSERT INTO %s (nombre, activo) VALUES ($1, TRUE) RETURNING id`, r.tabla)
	c := &entity.Catalogo{Nombre: nombre, Activo: true}
	if err := r.q.QueryRow(context.Background(), query, nombre).Scan(&c.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert %s: %w", r.tabla, err)
	}
	return c, nil
}

// Rename cambia el nombre de una fila.
func (r *CatalogoRepo) Rename(id int64, nombre string) error {
	query := fmt.Sprintf(`UPDATE %s SET nombre = $2 WHERE id = $1`, r.tabla)
	cmd, err := r.q.Exec(context.Background(), query, id, nombre)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("rename %s: %w", r.tabla, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActivo activa o desactiva una fila; ErrSinSoftDelete si la tabla no
// declara la capacidad.
func (r *CatalogoRepo) SetActivo(id int64, activo bool) error {
	if !r.soportaSoftDelete {
		return domain.ErrSinSoftDelete
	}
	query := fmt.Sprintf(`UPDATE %s SET activo = $2 WHERE id = $1`, r.tabla)
	cmd, err := r.q.Exec(context.Background(), query, id, activo)
	if err != nil {
		return fmt.Errorf("set activo %s: %w", r.tabla, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoportaSoftDelete expone la capacidad declarada del adaptador.
func (r *CatalogoRepo) SoportaSoftDelete() bool {
	return r.soportaSoftDelete
}
