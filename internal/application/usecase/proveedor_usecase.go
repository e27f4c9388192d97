package usecase

import (
	"context"
	"strings"

	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// ProveedorUseCase administra el directorio de proveedores y su asociación
// n:m con categorías del catálogo.
type ProveedorUseCase struct {
	repo       repository.ProveedorRepository
	categorias repository.CatalogoRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository, categorias repository.CatalogoRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo, categorias: categorias}
}

func (uc *ProveedorUseCase) validar(in *dto.SaveProveedorRequest) error {
	in.Nombre = strings.TrimSpace(in.Nombre)
	if in.Nombre == "" {
		return domain.ErrInvalidInput
	}
	if in.Valoracion != nil && (*in.Valoracion < 1 || *in.Valoracion > 5) {
		return domain.ErrInvalidInput
	}
	switch in.ManejoPrecios {
	case "", entity.PreciosBajo, entity.PreciosMedio, entity.PreciosAlto:
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// resolverCategorias traduce nombres a IDs exigiendo filas activas.
func (uc *ProveedorUseCase) resolverCategorias(nombres []string) ([]int64, error) {
	ids := make([]int64, 0, len(nombres))
	for _, nombre := range nombres {
		nombre = strings.TrimSpace(nombre)
		if nombre == "" {
			continue
		}
		cat, err := uc.categorias.GetPorNombre(nombre, true)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrInactiveReference
		}
		ids = append(ids, cat.ID)
	}
	return ids, nil
}

// Create registra un proveedor y asocia sus categorías.
func (uc *ProveedorUseCase) Create(ctx context.Context, in dto.SaveProveedorRequest) (*dto.ProveedorResponse, error) {
	if err := uc.validar(&in); err != nil {
		return nil, err
	}
	if existente, _ := uc.repo.GetByNombre(in.Nombre); existente != nil {
		return nil, domain.ErrDuplicate
	}
	categoriaIDs, err := uc.resolverCategorias(in.Categorias)
	if err != nil {
		return nil, err
	}
	proveedor := requestAProveedor(&in)
	proveedor.Activo = true
	if err := uc.repo.Create(proveedor); err != nil {
		return nil, err
	}
	if len(categoriaIDs) > 0 {
		if err := uc.repo.SetCategorias(proveedor.ID, categoriaIDs); err != nil {
			return nil, err
		}
		proveedor.Categorias = in.Categorias
	}
	return proveedorADTO(proveedor), nil
}

// Update reescribe los datos del proveedor y reemplaza sus categorías.
func (uc *ProveedorUseCase) Update(ctx context.Context, id int64, in dto.SaveProveedorRequest) error {
	if err := uc.validar(&in); err != nil {
		return err
	}
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if proveedor == nil {
		return domain.ErrNotFound
	}
	if otro, _ := uc.repo.GetByNombre(in.Nombre); otro != nil && otro.ID != id {
		return domain.ErrDuplicate
	}
	categoriaIDs, err := uc.resolverCategorias(in.Categorias)
	if err != nil {
		return err
	}
	actualizado := requestAProveedor(&in)
	actualizado.ID = id
	actualizado.Activo = proveedor.Activo
	if err := uc.repo.Update(actualizado); err != nil {
		return err
	}
	return uc.repo.SetCategorias(id, categoriaIDs)
}

// Delete marca el proveedor como inactivo.
func (uc *ProveedorUseCase) Delete(ctx context.Context, id int64) error {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if proveedor == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id)
}

// GetByID devuelve un proveedor con sus categorías.
func (uc *ProveedorUseCase) GetByID(ctx context.Context, id int64) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNotFound
	}
	return proveedorADTO(proveedor), nil
}

// List devuelve proveedores activos con filtros opcionales por categoría,
// valoración y manejo de precios.
func (uc *ProveedorUseCase) List(ctx context.Context, filtro repository.FiltroProveedores) ([]dto.ProveedorResponse, error) {
	if filtro.Valoracion < 0 || filtro.Valoracion > 5 {
		return nil, domain.ErrInvalidInput
	}
	proveedores, err := uc.repo.List(filtro)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for _, p := range proveedores {
		out = append(out, *proveedorADTO(p))
	}
	return out, nil
}

func requestAProveedor(in *dto.SaveProveedorRequest) *entity.Proveedor {
	return &entity.Proveedor{
		Nombre:        in.Nombre,
		Contacto:      in.Contacto,
		Telefono:      in.Telefono,
		Email:         in.Email,
		Direccion:     in.Direccion,
		RedesSociales: in.RedesSociales,
		Valoracion:    in.Valoracion,
		ManejoPrecios: in.ManejoPrecios,
		Comentarios:   in.Comentarios,
		Categorias:    in.Categorias,
	}
}

func proveedorADTO(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:            p.ID,
		Nombre:        p.Nombre,
		Contacto:      p.Contacto,
		Telefono:      p.Telefono,
		Email:         p.Email,
		Direccion:     p.Direccion,
		RedesSociales: p.RedesSociales,
		Valoracion:    p.Valoracion,
		ManejoPrecios: p.ManejoPrecios,
		Comentarios:   p.Comentarios,
		Categorias:    p.Categorias,
	}
}
