package solicitudes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/application/inventory"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// EntregasUseCase registra entregas internas: cabecera + líneas + descuento
// de stock + asientos de Salida, todo dentro de una misma transacción. Si
// cualquier línea no tiene stock suficiente, la entrega completa se rechaza.
type EntregasUseCase struct {
	solicitudRepo     repository.SolicitudRepository
	departamentosRepo repository.CatalogoRepository
	solicitantesRepo  repository.SolicitanteRepository
	libro             *inventory.LibroUseCase
	txRunner          inventory.TxRunner
}

// NewEntregasUseCase construye el caso de uso de entregas.
func NewEntregasUseCase(
	solicitudRepo repository.SolicitudRepository,
	departamentosRepo repository.CatalogoRepository,
	solicitantesRepo repository.SolicitanteRepository,
	libro *inventory.LibroUseCase,
	txRunner inventory.TxRunner,
) *EntregasUseCase {
	return &EntregasUseCase{
		solicitudRepo:     solicitudRepo,
		departamentosRepo: departamentosRepo,
		solicitantesRepo:  solicitantesRepo,
		libro:             libro,
		txRunner:          txRunner,
	}
}

// consolidarLineas agrupa líneas repetidas del mismo producto sumando
// cantidades, preservando el orden de primera aparición.
func consolidarLineas(lineas []dto.LineaEntregaRequest) []dto.LineaEntregaRequest {
	orden := make([]int64, 0, len(lineas))
	porProducto := make(map[int64]int, len(lineas))
	for _, l := range lineas {
		if _, visto := porProducto[l.ProductoID]; !visto {
			orden = append(orden, l.ProductoID)
		}
		porProducto[l.ProductoID] += l.Cantidad
	}
	out := make([]dto.LineaEntregaRequest, 0, len(orden))
	for _, id := range orden {
		out = append(out, dto.LineaEntregaRequest{ProductoID: id, Cantidad: porProducto[id]})
	}
	return out
}

// RegistrarEntrega valida y persiste la entrega. Devuelve el ID de la
// cabecera. El descuento de stock es condicional: cero filas afectadas
// significa stock insuficiente y revierte todo.
func (uc *EntregasUseCase) RegistrarEntrega(ctx context.Context, responsableID int64, in dto.RegistrarEntregaRequest) (int64, error) {
	if strings.TrimSpace(in.Comentario) == "" || len(in.Lineas) == 0 {
		return 0, domain.ErrInvalidInput
	}
	for _, l := range in.Lineas {
		if l.ProductoID <= 0 || l.Cantidad <= 0 {
			return 0, domain.ErrInvalidInput
		}
	}

	depto, err := uc.departamentosRepo.GetByID(in.DepartamentoID)
	if err != nil {
		return 0, err
	}
	if depto == nil || !depto.Activo {
		return 0, fmt.Errorf("Departamento: %w", domain.ErrInactiveReference)
	}
	solicitante, err := uc.solicitantesRepo.GetByID(in.SolicitanteID)
	if err != nil {
		return 0, err
	}
	if solicitante == nil || !solicitante.Activo {
		return 0, fmt.Errorf("Solicitante: %w", domain.ErrInactiveReference)
	}

	lineas := consolidarLineas(in.Lineas)
	txID := uuid.New().String()

	var solicitudID int64
	err = uc.txRunner.RunEntrega(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
		solicitudRepo repository.SolicitudRepository,
	) error {
		id, err := solicitudRepo.CreateCabecera(&entity.Solicitud{
			DepartamentoID: in.DepartamentoID,
			SolicitanteID:  in.SolicitanteID,
			ResponsableID:  responsableID,
			Comentario:     in.Comentario,
			Activo:         true,
		})
		if err != nil {
			return err
		}
		solicitudID = id

		referencia := fmt.Sprintf("Solicitud #%d - %s", id, in.Comentario)
		for _, l := range lineas {
			producto, err := productoRepo.GetByID(l.ProductoID)
			if err != nil {
				return err
			}
			if producto == nil || !producto.Activo {
				return domain.ErrNotFound
			}
			if err := solicitudRepo.CreateDetalle(&entity.DetalleSolicitud{
				SolicitudID: id,
				ProductoID:  l.ProductoID,
				Cantidad:    l.Cantidad,
			}); err != nil {
				return err
			}
			ok, err := invRepo.DescontarStock(l.ProductoID, l.Cantidad)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("producto %s: %w", producto.Nombre, domain.ErrInsufficientStock)
			}
			resp := responsableID
			if err := uc.libro.RegistrarMovimientoConRepos(movRepo, productoRepo, inventory.MovimientoInput{
				ProductoID:    l.ProductoID,
				Tipo:          entity.MovimientoSalida,
				Cantidad:      l.Cantidad,
				ResponsableID: &resp,
				Referencia:    referencia,
				TransaccionID: txID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return solicitudID, nil
}

// Listar devuelve el historial de entregas con filtros opcionales.
func (uc *EntregasUseCase) Listar(ctx context.Context, filtro repository.FiltroSolicitudes) ([]dto.SolicitudResponse, error) {
	filas, err := uc.solicitudRepo.List(filtro)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SolicitudResponse, 0, len(filas))
	for _, f := range filas {
		out = append(out, resumenADTO(f))
	}
	return out, nil
}

// Obtener devuelve una entrega con sus líneas.
func (uc *EntregasUseCase) Obtener(ctx context.Context, id int64) (*dto.SolicitudDetalleResponse, error) {
	cabecera, err := uc.solicitudRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if cabecera == nil {
		return nil, domain.ErrNotFound
	}
	lineas, err := uc.solicitudRepo.Lineas(id)
	if err != nil {
		return nil, err
	}
	detalle := &dto.SolicitudDetalleResponse{SolicitudResponse: resumenADTO(cabecera)}
	for _, l := range lineas {
		detalle.Lineas = append(detalle.Lineas, dto.LineaEntregaResponse{
			Producto: l.Producto,
			Codigo:   l.Codigo,
			Cantidad: l.Cantidad,
		})
	}
	return detalle, nil
}

func resumenADTO(f *entity.SolicitudResumen) dto.SolicitudResponse {
	return dto.SolicitudResponse{
		ID:           f.ID,
		Fecha:        f.Fecha,
		Departamento: f.Departamento,
		Solicitante:  f.Solicitante,
		Comentario:   f.Comentario,
		Responsable:  f.Responsable,
	}
}
