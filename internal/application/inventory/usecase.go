package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	domaininv "github.com/usm-ti/almacen-api/internal/domain/inventory"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
	"github.com/usm-ti/almacen-api/pkg/logger"
)

// InventarioUseCase es el único componente que escribe Inventario.Stock.
// Toda mutación delega el asiento correspondiente al libro de movimientos
// dentro de la misma transacción.
type InventarioUseCase struct {
	invRepo      repository.InventarioRepository
	productoRepo repository.ProductoRepository
	libro        *LibroUseCase
	txRunner     TxRunner
	log          *logger.Logger
}

// NewInventarioUseCase construye el caso de uso.
func NewInventarioUseCase(
	invRepo repository.InventarioRepository,
	productoRepo repository.ProductoRepository,
	libro *LibroUseCase,
	txRunner TxRunner,
	log *logger.Logger,
) *InventarioUseCase {
	return &InventarioUseCase{
		invRepo:      invRepo,
		productoRepo: productoRepo,
		libro:        libro,
		txRunner:     txRunner,
		log:          log,
	}
}

// AgregarStock suma cantidad al stock de un producto con un UPDATE relativo y
// registra el asiento Entrada en la misma transacción.
func (uc *InventarioUseCase) AgregarStock(ctx context.Context, productoID int64, cantidad int, responsableID *int64) error {
	if cantidad <= 0 {
		return domain.ErrInvalidInput
	}
	producto, err := uc.productoRepo.GetByID(productoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	txID := uuid.New().String()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error {
		if err := invRepo.AddStock(productoID, cantidad); err != nil {
			return err
		}
		return uc.libro.RegistrarMovimientoConRepos(movRepo, productoRepo, MovimientoInput{
			ProductoID:    productoID,
			Tipo:          entity.MovimientoEntrada,
			Cantidad:      cantidad,
			ResponsableID: responsableID,
			Referencia:    "Entrada de stock - " + producto.Nombre,
			TransaccionID: txID,
		})
	})
}

// RegistrarDeltaStock fija el stock de un producto en nuevoStock y asienta en
// el libro la magnitud del cambio (Entrada si sube, Salida si baja). El libro
// registra deltas, nunca el valor absoluto nuevo. Delta cero no asienta nada.
func (uc *InventarioUseCase) RegistrarDeltaStock(ctx context.Context, productoID int64, nuevoStock int, responsableID *int64) error {
	if nuevoStock < 0 {
		return domain.ErrInvalidInput
	}
	actual, err := uc.invRepo.GetByProducto(productoID)
	if err != nil {
		return err
	}
	viejo := 0
	if actual != nil {
		viejo = actual.Stock
	}
	diff := nuevoStock - viejo
	if diff == 0 {
		return nil
	}
	tipo := entity.MovimientoEntrada
	cantidad := diff
	if diff < 0 {
		tipo = entity.MovimientoSalida
		cantidad = -diff
	}
	txID := uuid.New().String()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error {
		if tipo == entity.MovimientoEntrada {
			if err := invRepo.AddStock(productoID, cantidad); err != nil {
				return err
			}
		} else {
			ok, err := invRepo.DescontarStock(productoID, cantidad)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrInsufficientStock
			}
		}
		return uc.libro.RegistrarMovimientoConRepos(movRepo, productoRepo, MovimientoInput{
			ProductoID:    productoID,
			Tipo:          tipo,
			Cantidad:      cantidad,
			ResponsableID: responsableID,
			Referencia:    "Edición de stock inicial",
			TransaccionID: txID,
		})
	})
}

// SweepEstados recomputa el estado de stock de todos los productos activos y
// actualiza solo las filas cuyo estado almacenado difiere del calculado.
// Filas con EstadoBloqueado (reservado manual) no se tocan. Es un barrido de
// mejor esfuerzo: el fallo en una fila se registra y el barrido continúa.
// Devuelve cuántas filas se actualizaron; correr dos veces seguidas sin
// escrituras intermedias produce cero actualizaciones la segunda vez.
func (uc *InventarioUseCase) SweepEstados(ctx context.Context) (int, error) {
	filas, err := uc.productoRepo.ListInventario(repository.FiltroInventario{})
	if err != nil {
		return 0, err
	}
	actualizadas := 0
	for _, fila := range filas {
		if fila.EstadoBloqueado {
			continue
		}
		nuevo := domaininv.EstadoPara(fila.Stock, fila.StockMinimo)
		if nuevo == fila.EstadoStock {
			continue
		}
		if err := uc.invRepo.UpdateEstado(fila.ProductoID, nuevo); err != nil {
			uc.log.Warn().Err(err).Int64("producto_id", fila.ProductoID).Msg("barrido de estados: fila omitida")
			continue
		}
		actualizadas++
	}
	return actualizadas, nil
}

// ListarInventario corre el barrido de estados (recomputación perezosa, en
// lectura) y devuelve el listado de inventario con los filtros dados.
func (uc *InventarioUseCase) ListarInventario(ctx context.Context, filtro repository.FiltroInventario) ([]dto.ProductoResponse, error) {
	if _, err := uc.SweepEstados(ctx); err != nil {
		// El barrido es mejor esfuerzo; el listado no debe caerse por él.
		uc.log.Warn().Err(err).Msg("barrido de estados previo al listado")
	}
	filas, err := uc.productoRepo.ListInventario(filtro)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(filas))
	for _, f := range filas {
		out = append(out, dto.ProductoResponse{
			ID:          f.ProductoID,
			Codigo:      f.Codigo,
			Nombre:      f.Nombre,
			Marca:       f.Marca,
			Categoria:   f.Categoria,
			Stock:       f.Stock,
			StockMinimo: f.StockMinimo,
			Ubicacion:   f.Ubicacion,
			EstadoStock: f.EstadoStock,
		})
	}
	return out, nil
}

// Reconciliar compara el contador desnormalizado de stock contra la suma del
// libro (Σ Entradas − Σ Salidas) por producto y devuelve las filas que no
// cuadran. Solo lectura; no corrige nada.
func (uc *InventarioUseCase) Reconciliar(ctx context.Context) ([]dto.DiscrepanciaResponse, error) {
	filas, err := uc.invRepo.Discrepancias()
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiscrepanciaResponse, 0, len(filas))
	for _, d := range filas {
		out = append(out, dto.DiscrepanciaResponse{
			ProductoID: d.ProductoID,
			Producto:   d.Producto,
			Stock:      d.Stock,
			SumaLibro:  d.SumaLibro,
			Diferencia: d.Diferencia,
		})
	}
	return out, nil
}

// AlertasStockBajo lista productos activos con stock <= stock mínimo.
func (uc *InventarioUseCase) AlertasStockBajo(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	filas, err := uc.invRepo.ListBajoMinimo()
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertaStockResponse, 0, len(filas))
	for _, a := range filas {
		out = append(out, dto.AlertaStockResponse{
			ProductoID:  a.ProductoID,
			Producto:    a.Producto,
			Categoria:   a.Categoria,
			Stock:       a.Stock,
			StockMinimo: a.StockMinimo,
		})
	}
	return out, nil
}
