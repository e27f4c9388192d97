package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/application/usecase"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
	"github.com/usm-ti/almacen-api/internal/testutil"
)

func buildProveedorUC(t *testing.T) (*usecase.ProveedorUseCase, *testutil.AlmacenMemoria) {
	t.Helper()
	alm := testutil.NuevoAlmacen()
	return usecase.NewProveedorUseCase(alm.ProveedoresRepo(), alm.CatalogoRepo("categorias", true)), alm
}

func ptrInt(v int) *int { return &v }

func TestCreateProveedor_ConCategorias(t *testing.T) {
	uc, alm := buildProveedorUC(t)
	alm.AgregarCatalogo("categorias", "Herramientas", true)
	alm.AgregarCatalogo("categorias", "Pinturas", true)

	resp, err := uc.Create(context.Background(), dto.SaveProveedorRequest{
		Nombre:     "Ferretería Central",
		Valoracion: ptrInt(4),
		Categorias: []string{"Herramientas", "Pinturas"},
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Herramientas", "Pinturas"}, resp.Categorias)
	assert.Len(t, alm.ProvCats[resp.ID], 2)
}

func TestCreateProveedor_CategoriaInactiva(t *testing.T) {
	uc, alm := buildProveedorUC(t)
	alm.AgregarCatalogo("categorias", "Pinturas", false)

	_, err := uc.Create(context.Background(), dto.SaveProveedorRequest{
		Nombre:     "Pinturas del Sur",
		Categorias: []string{"Pinturas"},
	})

	assert.ErrorIs(t, err, domain.ErrInactiveReference)
	assert.Empty(t, alm.Proveedores, "no debe quedar proveedor a medio crear")
}

func TestCreateProveedor_Validaciones(t *testing.T) {
	uc, _ := buildProveedorUC(t)

	casos := []struct {
		nombre string
		in     dto.SaveProveedorRequest
	}{
		{"nombre vacío", dto.SaveProveedorRequest{Nombre: "  "}},
		{"valoración fuera de rango", dto.SaveProveedorRequest{Nombre: "X", Valoracion: ptrInt(6)}},
		{"valoración cero", dto.SaveProveedorRequest{Nombre: "X", Valoracion: ptrInt(0)}},
		{"manejo de precios desconocido", dto.SaveProveedorRequest{Nombre: "X", ManejoPrecios: "Regalado"}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.Create(context.Background(), c.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateProveedor_NombreDuplicado(t *testing.T) {
	uc, _ := buildProveedorUC(t)
	_, err := uc.Create(context.Background(), dto.SaveProveedorRequest{Nombre: "Ferretería Central"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.SaveProveedorRequest{Nombre: "Ferretería Central"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateProveedor_PreservaActivoYReemplazaCategorias(t *testing.T) {
	uc, alm := buildProveedorUC(t)
	alm.AgregarCatalogo("categorias", "Herramientas", true)
	alm.AgregarCatalogo("categorias", "Pinturas", true)
	resp, err := uc.Create(context.Background(), dto.SaveProveedorRequest{
		Nombre:     "Ferretería Central",
		Categorias: []string{"Herramientas"},
	})
	require.NoError(t, err)

	err = uc.Update(context.Background(), resp.ID, dto.SaveProveedorRequest{
		Nombre:        "Ferretería Central",
		ManejoPrecios: entity.PreciosMedio,
		Categorias:    []string{"Pinturas"},
	})

	require.NoError(t, err)
	assert.True(t, alm.Proveedores[resp.ID].Activo)
	actualizado, err := uc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pinturas"}, actualizado.Categorias, "las categorías se reemplazan completas")
}

func TestDeleteProveedor_SoftDelete(t *testing.T) {
	uc, alm := buildProveedorUC(t)
	resp, err := uc.Create(context.Background(), dto.SaveProveedorRequest{Nombre: "Ferretería Central"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), resp.ID))

	require.Contains(t, alm.Proveedores, resp.ID, "la fila sigue existiendo")
	assert.False(t, alm.Proveedores[resp.ID].Activo)

	lista, err := uc.List(context.Background(), repository.FiltroProveedores{})
	require.NoError(t, err)
	assert.Empty(t, lista, "los inactivos no aparecen en el listado")
}

func TestListProveedores_FiltroPorCategoria(t *testing.T) {
	uc, alm := buildProveedorUC(t)
	alm.AgregarCatalogo("categorias", "Herramientas", true)
	alm.AgregarCatalogo("categorias", "Pinturas", true)
	_, err := uc.Create(context.Background(), dto.SaveProveedorRequest{
		Nombre:     "Ferretería Central",
		Categorias: []string{"Herramientas"},
	})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.SaveProveedorRequest{
		Nombre:     "Pinturas del Sur",
		Categorias: []string{"Pinturas"},
	})
	require.NoError(t, err)

	lista, err := uc.List(context.Background(), repository.FiltroProveedores{Categoria: "Pinturas"})

	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, "Pinturas del Sur", lista[0].Nombre)
}
