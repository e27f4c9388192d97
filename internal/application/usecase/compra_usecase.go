package usecase

import (
	"context"
	"strings"

	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// CompraUseCase administra la cola consultiva de solicitudes de compra.
// Es un bloc de notas estructurado: nunca toca inventario ni el libro.
type CompraUseCase struct {
	repo repository.CompraRepository
}

// NewCompraUseCase construye el caso de uso.
func NewCompraUseCase(repo repository.CompraRepository) *CompraUseCase {
	return &CompraUseCase{repo: repo}
}

// Create registra una solicitud de compra en estado Pendiente.
func (uc *CompraUseCase) Create(ctx context.Context, in dto.CreateCompraRequest) (*dto.CompraResponse, error) {
	in.Producto = strings.TrimSpace(in.Producto)
	in.Motivo = strings.TrimSpace(in.Motivo)
	if in.Producto == "" || in.Motivo == "" || in.Cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.PrioridadValida(in.Prioridad) {
		return nil, domain.ErrInvalidInput
	}
	compra := &entity.SolicitudCompra{
		Producto:  in.Producto,
		Cantidad:  in.Cantidad,
		Motivo:    in.Motivo,
		Prioridad: in.Prioridad,
		Proveedor: strings.TrimSpace(in.Proveedor),
		Estado:    entity.CompraPendiente,
	}
	if err := uc.repo.Create(compra); err != nil {
		return nil, err
	}
	return compraADTO(compra), nil
}

// List devuelve la cola ordenada por prioridad (Alta, Media, Baja) y fecha
// descendente, con filtros opcionales por estado y prioridad.
func (uc *CompraUseCase) List(ctx context.Context, estado, prioridad string) ([]dto.CompraResponse, error) {
	if estado != "" && !entity.EstadoCompraValido(estado) {
		return nil, domain.ErrInvalidInput
	}
	if prioridad != "" && !entity.PrioridadValida(prioridad) {
		return nil, domain.ErrInvalidInput
	}
	compras, err := uc.repo.List(estado, prioridad)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompraResponse, 0, len(compras))
	for _, c := range compras {
		out = append(out, *compraADTO(c))
	}
	return out, nil
}

// UpdateEstado transiciona una solicitud a un estado conocido.
func (uc *CompraUseCase) UpdateEstado(ctx context.Context, id int64, estado string) error {
	if !entity.EstadoCompraValido(estado) {
		return domain.ErrInvalidInput
	}
	compra, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if compra == nil {
		return domain.ErrNotFound
	}
	return uc.repo.UpdateEstado(id, estado)
}

// Delete elimina la solicitud. Borrado físico: la cola es consultiva y no
// deja rastro en inventario ni en el libro.
func (uc *CompraUseCase) Delete(ctx context.Context, id int64) error {
	compra, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if compra == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func compraADTO(c *entity.SolicitudCompra) *dto.CompraResponse {
	return &dto.CompraResponse{
		ID:        c.ID,
		Producto:  c.Producto,
		Cantidad:  c.Cantidad,
		Motivo:    c.Motivo,
		Prioridad: c.Prioridad,
		Proveedor: c.Proveedor,
		Fecha:     c.Fecha,
		Estado:    c.Estado,
	}
}
