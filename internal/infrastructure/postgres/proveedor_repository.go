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

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación del puerto de proveedores sobre PostgreSQL.
// La asociación n:m con categorías vive en proveedor_categoria.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

const proveedorSelect = `
	SELECT id, nombre, contacto, telefono, email, direccion, redes_sociales,
	       valoracion, manejo_precios, comentarios, activo
	FROM proveedores`

// Create inserta un proveedor y deja el ID asignado. Las categorías se
// asocian aparte con SetCategorias.
func (r *ProveedorRepo) Create(p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (nombre, contacto, telefono, email, direccion, redes_sociales, valoracion, manejo_precios, comentarios, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.Nombre, p.Contacto, p.Telefono, p.Email, p.Direccion, p.RedesSociales,
		p.Valoracion, p.ManejoPrecios, p.Comentarios, p.Activo,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID devuelve un proveedor con sus categorías (nil si no existe).
func (r *ProveedorRepo) GetByID(id int64) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := r.q.QueryRow(context.Background(), proveedorSelect+` WHERE id = $1`, id).Scan(
		&p.ID, &p.Nombre, &p.Contacto, &p.Telefono, &p.Email, &p.Direccion,
		&p.RedesSociales, &p.Valoracion, &p.ManejoPrecios, &p.Comentarios, &p.Activo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	if err := r.cargarCategorias([]*entity.Proveedor{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByNombre devuelve un proveedor por nombre exacto (nil si no existe).
func (r *ProveedorRepo) GetByNombre(nombre string) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := r.q.QueryRow(context.Background(), proveedorSelect+` WHERE nombre = $1`, nombre).Scan(
		&p.ID, &p.Nombre, &p.Contacto, &p.Telefono, &p.Email, &p.Direccion,
		&p.RedesSociales, &p.Valoracion, &p.ManejoPrecios, &p.Comentarios, &p.Activo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor by nombre: %w", err)
	}
	return &p, nil
}

// Update reescribe los datos del proveedor (no toca activo ni categorías).
func (r *ProveedorRepo) Update(p *entity.Proveedor) error {
	query := `
		UPDATE proveedores SET nombre = $2, contacto = $3, telefono = $4, email = $5,
		       direccion = $6, redes_sociales = $7, valoracion = $8, manejo_precios = $9, comentarios = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.Contacto, p.Telefono, p.Email, p.Direccion,
		p.RedesSociales, p.Valoracion, p.ManejoPrecios, p.Comentarios,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el proveedor como inactivo.
func (r *ProveedorRepo) SoftDelete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE proveedores SET activo = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete proveedor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve proveedores activos con filtros opcionales, con categorías cargadas.
func (r *ProveedorRepo) List(filtro repository.FiltroProveedores) ([]*entity.Proveedor, error) {
	query := proveedorSelect + ` WHERE activo = TRUE`
	args := []any{}
	if filtro.Categoria != "" {
		args = append(args, filtro.Categoria)
		query += fmt.Sprintf(` AND id IN (
			SELECT pc.proveedor_id FROM proveedor_categoria pc
			JOIN categorias c ON c.id = pc.categoria_id
			WHERE c.nombre = $%d)`, len(args))
	}
	if filtro.Valoracion > 0 {
		args = append(args, filtro.Valoracion)
		query += fmt.Sprintf(" AND valoracion = $%d", len(args))
	}
	if filtro.ManejoPrecios != "" {
		args = append(args, filtro.ManejoPrecios)
		query += fmt.Sprintf(" AND manejo_precios = $%d", len(args))
	}
	query += " ORDER BY nombre"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()

	var out []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(
			&p.ID, &p.Nombre, &p.Contacto, &p.Telefono, &p.Email, &p.Direccion,
			&p.RedesSociales, &p.Valoracion, &p.ManejoPrecios, &p.Comentarios, &p.Activo,
		); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.cargarCategorias(out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetCategorias reemplaza el conjunto de categorías asociadas al proveedor.
func (r *ProveedorRepo) SetCategorias(proveedorID int64, categoriaIDs []int64) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM proveedor_categoria WHERE proveedor_id = $1`, proveedorID); err != nil {
		return fmt.Errorf("limpiar categorias proveedor: %w", err)
	}
	for _, catID := range categoriaIDs {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO proveedor_categoria (proveedor_id, categoria_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			proveedorID, catID,
		); err != nil {
			return fmt.Errorf("asociar categoria proveedor: %w", err)
		}
	}
	return nil
}

// cargarCategorias rellena Categorias de cada proveedor en un solo query.
func (r *ProveedorRepo) cargarCategorias(proveedores []*entity.Proveedor) error {
	if len(proveedores) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(proveedores))
	porID := make(map[int64]*entity.Proveedor, len(proveedores))
	for _, p := range proveedores {
		ids = append(ids, p.ID)
		porID[p.ID] = p
	}
	query := `
		SELECT pc.proveedor_id, c.nombre
		FROM proveedor_categoria pc
		JOIN categorias c ON c.id = pc.categoria_id
		WHERE pc.proveedor_id = ANY($1)
		ORDER BY c.nombre`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("categorias proveedores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var proveedorID int64
		var nombre string
		if err := rows.Scan(&proveedorID, &nombre); err != nil {
			return fmt.Errorf("scan categoria proveedor: %w", err)
		}
		if p, ok := porID[proveedorID]; ok {
			p.Categorias = append(p.Categorias, nombre)
		}
	}
	return rows.Err()
}
