package usecase

import (
	"context"
	"strings"

	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// CatalogoUseCase opera una tabla de referencia simple (categorías, marcas,
// ubicaciones, departamentos) detrás del mismo puerto. La capacidad de
// soft-delete la declara el adaptador; intentar desactivar en una tabla sin
// la capacidad devuelve ErrSinSoftDelete.
type CatalogoUseCase struct {
	repo repository.CatalogoRepository
}

// NewCatalogoUseCase construye el caso de uso sobre una tabla concreta.
func NewCatalogoUseCase(repo repository.CatalogoRepository) *CatalogoUseCase {
	return &CatalogoUseCase{repo: repo}
}

// List devuelve las filas, todas o solo activas.
func (uc *CatalogoUseCase) List(ctx context.Context, soloActivos bool) ([]dto.CatalogoItemResponse, error) {
	filas, err := uc.repo.List(soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogoItemResponse, 0, len(filas))
	for _, f := range filas {
		out = append(out, dto.CatalogoItemResponse{ID: f.ID, Nombre: f.Nombre, Activo: f.Activo})
	}
	return out, nil
}

// Add agrega un valor nuevo. Nombre duplicado devuelve ErrDuplicate.
func (uc *CatalogoUseCase) Add(ctx context.Context, nombre string) (*dto.CatalogoItemResponse, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if existente, _ := uc.repo.GetPorNombre(nombre, false); existente != nil {
		return nil, domain.ErrDuplicate
	}
	fila, err := uc.repo.Add(nombre)
	if err != nil {
		return nil, err
	}
	return &dto.CatalogoItemResponse{ID: fila.ID, Nombre: fila.Nombre, Activo: fila.Activo}, nil
}

// Rename cambia el nombre de una fila existente.
func (uc *CatalogoUseCase) Rename(ctx context.Context, id int64, nombre string) error {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return domain.ErrInvalidInput
	}
	fila, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if fila == nil {
		return domain.ErrNotFound
	}
	if otro, _ := uc.repo.GetPorNombre(nombre, false); otro != nil && otro.ID != id {
		return domain.ErrDuplicate
	}
	return uc.repo.Rename(id, nombre)
}

// SetActivo activa o desactiva una fila. Las filas inactivas dejan de poder
// asociarse a productos nuevos; las asociaciones existentes se conservan.
func (uc *CatalogoUseCase) SetActivo(ctx context.Context, id int64, activo bool) error {
	if !uc.repo.SoportaSoftDelete() {
		return domain.ErrSinSoftDelete
	}
	fila, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if fila == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetActivo(id, activo)
}

// SolicitanteUseCase administra solicitantes de entregas.
type SolicitanteUseCase struct {
	repo          repository.SolicitanteRepository
	departamentos repository.CatalogoRepository
}

// NewSolicitanteUseCase construye el caso de uso.
func NewSolicitanteUseCase(repo repository.SolicitanteRepository, departamentos repository.CatalogoRepository) *SolicitanteUseCase {
	return &SolicitanteUseCase{repo: repo, departamentos: departamentos}
}

// List devuelve los solicitantes, todos o solo activos.
func (uc *SolicitanteUseCase) List(ctx context.Context, soloActivos bool) ([]dto.SolicitanteResponse, error) {
	filas, err := uc.repo.List(soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SolicitanteResponse, 0, len(filas))
	for _, s := range filas {
		out = append(out, dto.SolicitanteResponse{
			ID:             s.ID,
			Cedula:         s.Cedula,
			Nombre:         s.Nombre,
			DepartamentoID: s.DepartamentoID,
			Activo:         s.Activo,
		})
	}
	return out, nil
}

// Add registra un solicitante; el departamento (si viene) debe estar activo.
func (uc *SolicitanteUseCase) Add(ctx context.Context, in dto.AddSolicitanteRequest) (*dto.SolicitanteResponse, error) {
	in.Cedula = strings.TrimSpace(in.Cedula)
	in.Nombre = strings.TrimSpace(in.Nombre)
	if in.Cedula == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DepartamentoID != nil {
		depto, err := uc.departamentos.GetByID(*in.DepartamentoID)
		if err != nil {
			return nil, err
		}
		if depto == nil || !depto.Activo {
			return nil, domain.ErrInactiveReference
		}
	}
	solicitante := &entity.Solicitante{
		Cedula:         in.Cedula,
		Nombre:         in.Nombre,
		DepartamentoID: in.DepartamentoID,
		Activo:         true,
	}
	if err := uc.repo.Add(solicitante); err != nil {
		return nil, err
	}
	return &dto.SolicitanteResponse{
		ID:             solicitante.ID,
		Cedula:         solicitante.Cedula,
		Nombre:         solicitante.Nombre,
		DepartamentoID: solicitante.DepartamentoID,
		Activo:         solicitante.Activo,
	}, nil
}

// SetActivo activa o desactiva un solicitante.
func (uc *SolicitanteUseCase) SetActivo(ctx context.Context, id int64, activo bool) error {
	fila, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if fila == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetActivo(id, activo)
}
