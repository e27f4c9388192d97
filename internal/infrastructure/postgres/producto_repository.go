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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un producto nuevo y deja el ID asignado en p.ID.
func (r *ProductoRepo) Create(p *entity.Producto) error {
	query := `
		INSERT INTO productos (codigo, nombre, marca_id, categoria_id, stock_minimo, activo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.Codigo, p.Nombre, p.MarcaID, p.CategoriaID, p.StockMinimo, p.Activo,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (incluye inactivos).
func (r *ProductoRepo) GetByID(id int64) (*entity.Producto, error) {
	query := `
		SELECT id, codigo, nombre, marca_id, categoria_id, stock_minimo, activo
		FROM productos WHERE id = $1`
	var p entity.Producto
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.MarcaID, &p.CategoriaID, &p.StockMinimo, &p.Activo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// GetByCodigo obtiene un producto por código único.
func (r *ProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	query := `
		SELECT id, codigo, nombre, marca_id, categoria_id, stock_minimo, activo
		FROM productos WHERE codigo = $1`
	var p entity.Producto
	err := r.q.QueryRow(context.Background(), query, codigo).Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.MarcaID, &p.CategoriaID, &p.StockMinimo, &p.Activo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto by codigo: %w", err)
	}
	return &p, nil
}

// GetNombre obtiene solo el nombre (para sintetizar referencias del libro).
func (r *ProductoRepo) GetNombre(id int64) (string, error) {
	var nombre string
	err := r.q.QueryRow(context.Background(), `SELECT nombre FROM productos WHERE id = $1`, id).Scan(&nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get nombre producto: %w", err)
	}
	return nombre, nil
}

// Update reescribe metadatos del producto. El stock no se toca aquí: vive en
// inventario y solo cambia vía movimientos.
func (r *ProductoRepo) Update(p *entity.Producto) error {
	query := `
		UPDATE productos SET codigo = $2, nombre = $3, marca_id = $4, categoria_id = $5, stock_minimo = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.Codigo, p.Nombre, p.MarcaID, p.CategoriaID, p.StockMinimo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el producto como inactivo.
func (r *ProductoRepo) SoftDelete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE productos SET activo = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListInventario devuelve el listado de inventario (solo productos activos)
// con nombres resueltos y filtros opcionales.
func (r *ProductoRepo) ListInventario(filtro repository.FiltroInventario) ([]*entity.FilaInventario, error) {
	query := `
		SELECT p.id, p.codigo, p.nombre,
		       COALESCE(m.nombre, 'N/A'),
		       COALESCE(c.nombre, 'N/A'),
		       COALESCE(i.stock, 0), p.stock_minimo,
		       COALESCE(u.nombre, 'N/A'),
		       COALESCE(i.estado_stock, 'agotado'),
		       COALESCE(i.estado_bloqueado, FALSE)
		FROM productos p
		LEFT JOIN inventario i ON i.producto_id = p.id
		LEFT JOIN marcas m ON m.id = p.marca_id
		LEFT JOIN categorias c ON c.id = p.categoria_id
		LEFT JOIN ubicaciones u ON u.id = i.ubicacion_id
		WHERE p.activo = TRUE`
	args := []any{}
	if filtro.Busqueda != "" {
		args = append(args, "%"+filtro.Busqueda+"%")
		query += fmt.Sprintf(" AND (p.nombre ILIKE $%d OR p.codigo ILIKE $%d)", len(args), len(args))
	}
	if filtro.Categoria != "" {
		args = append(args, filtro.Categoria)
		query += fmt.Sprintf(" AND c.nombre = $%d", len(args))
	}
	if filtro.Estado != "" {
		args = append(args, filtro.Estado)
		query += fmt.Sprintf(" AND i.estado_stock = $%d", len(args))
	}
	query += " ORDER BY p.nombre"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventario: %w", err)
	}
	defer rows.Close()

	var filas []*entity.FilaInventario
	for rows.Next() {
		var f entity.FilaInventario
		if err := rows.Scan(
			&f.ProductoID, &f.Codigo, &f.Nombre, &f.Marca, &f.Categoria,
			&f.Stock, &f.StockMinimo, &f.Ubicacion, &f.EstadoStock, &f.EstadoBloqueado,
		); err != nil {
			return nil, fmt.Errorf("scan fila inventario: %w", err)
		}
		filas = append(filas, &f)
	}
	return filas, rows.Err()
}
