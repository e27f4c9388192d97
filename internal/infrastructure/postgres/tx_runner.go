package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/usm-ti/almacen-api/internal/application/inventory"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovimientoRepository(tx)
	invRepo := NewInventarioRepository(tx)
	productoRepo := NewProductoRepository(tx)

	if err := fn(movRepo, invRepo, productoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunEntrega inicia una transacción con repos de inventario y entregas
// (cabecera + detalles + descuentos + asientos, todo o nada).
func (r *TxRunner) RunEntrega(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	productoRepo repository.ProductoRepository,
	solicitudRepo repository.SolicitudRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovimientoRepository(tx)
	invRepo := NewInventarioRepository(tx)
	productoRepo := NewProductoRepository(tx)
	solicitudRepo := NewSolicitudRepository(tx)

	if err := fn(movRepo, invRepo, productoRepo, solicitudRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
