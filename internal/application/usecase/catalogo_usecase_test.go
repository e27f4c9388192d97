package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/application/usecase"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/testutil"
)

func TestCatalogo_AddYRename(t *testing.T) {
	alm := testutil.NuevoAlmacen()
	uc := usecase.NewCatalogoUseCase(alm.CatalogoRepo("categorias", true))

	fila, err := uc.Add(context.Background(), "Herramientas")
	require.NoError(t, err)
	assert.True(t, fila.Activo)

	_, err = uc.Add(context.Background(), "Herramientas")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Add(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Rename(context.Background(), fila.ID, "Ferretería"))
	assert.Equal(t, "Ferretería", alm.Catalogos["categorias"][fila.ID].Nombre)
}

func TestCatalogo_SetActivoConCapacidad(t *testing.T) {
	alm := testutil.NuevoAlmacen()
	uc := usecase.NewCatalogoUseCase(alm.CatalogoRepo("categorias", true))
	id := alm.AgregarCatalogo("categorias", "Pinturas", true)

	require.NoError(t, uc.SetActivo(context.Background(), id, false))
	assert.False(t, alm.Catalogos["categorias"][id].Activo)

	// Las filas inactivas siguen siendo visibles en el listado completo.
	todas, err := uc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, todas, 1)
	activas, err := uc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, activas)
}

func TestCatalogo_SetActivoSinCapacidad(t *testing.T) {
	alm := testutil.NuevoAlmacen()
	uc := usecase.NewCatalogoUseCase(alm.CatalogoRepo("marcas", false))
	id := alm.AgregarCatalogo("marcas", "Bosch", true)

	err := uc.SetActivo(context.Background(), id, false)

	assert.ErrorIs(t, err, domain.ErrSinSoftDelete)
	assert.True(t, alm.Catalogos["marcas"][id].Activo, "la fila no se toca")
}

func TestSolicitante_AddExigeDepartamentoActivo(t *testing.T) {
	alm := testutil.NuevoAlmacen()
	uc := usecase.NewSolicitanteUseCase(alm.SolicitantesRepo(), alm.CatalogoRepo("departamentos", true))
	activo := alm.AgregarCatalogo("departamentos", "Mantención", true)
	inactivo := alm.AgregarCatalogo("departamentos", "Extensión", false)

	_, err := uc.Add(context.Background(), dto.AddSolicitanteRequest{
		Cedula:         "12345678-9",
		Nombre:         "Carla Soto",
		DepartamentoID: &activo,
	})
	require.NoError(t, err)

	_, err = uc.Add(context.Background(), dto.AddSolicitanteRequest{
		Cedula:         "98765432-1",
		Nombre:         "Pedro Díaz",
		DepartamentoID: &inactivo,
	})
	assert.ErrorIs(t, err, domain.ErrInactiveReference)

	// Cédula duplicada.
	_, err = uc.Add(context.Background(), dto.AddSolicitanteRequest{
		Cedula: "12345678-9",
		Nombre: "Otra Persona",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
