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
	"github.com/usm-ti/almacen-api/internal/testutil"
)

func buildCompraUC(t *testing.T) (*usecase.CompraUseCase, *testutil.AlmacenMemoria) {
	t.Helper()
	alm := testutil.NuevoAlmacen()
	return usecase.NewCompraUseCase(alm.ComprasRepo()), alm
}

func compra(producto, prioridad string) dto.CreateCompraRequest {
	return dto.CreateCompraRequest{
		Producto:  producto,
		Cantidad:  10,
		Motivo:    "Reposición",
		Prioridad: prioridad,
	}
}

func TestCreateCompra_NacePendiente(t *testing.T) {
	uc, _ := buildCompraUC(t)

	resp, err := uc.Create(context.Background(), compra("Tornillos", entity.PrioridadAlta))

	require.NoError(t, err)
	assert.Equal(t, entity.CompraPendiente, resp.Estado)
	assert.NotZero(t, resp.ID)
}

func TestCreateCompra_PrioridadDesconocida(t *testing.T) {
	uc, _ := buildCompraUC(t)

	_, err := uc.Create(context.Background(), compra("Tornillos", "Urgentísima"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListCompras_OrdenPorPrioridad(t *testing.T) {
	uc, _ := buildCompraUC(t)
	_, err := uc.Create(context.Background(), compra("Guantes", entity.PrioridadBaja))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), compra("Cemento", entity.PrioridadAlta))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), compra("Brocas", entity.PrioridadMedia))
	require.NoError(t, err)

	lista, err := uc.List(context.Background(), "", "")

	require.NoError(t, err)
	require.Len(t, lista, 3)
	assert.Equal(t, "Cemento", lista[0].Producto, "Alta va primero")
	assert.Equal(t, "Brocas", lista[1].Producto)
	assert.Equal(t, "Guantes", lista[2].Producto, "Baja va al final")
}

func TestListCompras_FiltroEstadoInvalido(t *testing.T) {
	uc, _ := buildCompraUC(t)

	_, err := uc.List(context.Background(), "Archivado", "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateEstadoCompra_Transicion(t *testing.T) {
	uc, alm := buildCompraUC(t)
	resp, err := uc.Create(context.Background(), compra("Tornillos", entity.PrioridadMedia))
	require.NoError(t, err)

	require.NoError(t, uc.UpdateEstado(context.Background(), resp.ID, entity.CompraAprobado))
	assert.Equal(t, entity.CompraAprobado, alm.Compras[0].Estado)

	assert.ErrorIs(t, uc.UpdateEstado(context.Background(), resp.ID, "Perdido"), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateEstado(context.Background(), 999, entity.CompraAprobado), domain.ErrNotFound)
}

func TestDeleteCompra_BorradoFisico(t *testing.T) {
	uc, alm := buildCompraUC(t)
	resp, err := uc.Create(context.Background(), compra("Tornillos", entity.PrioridadMedia))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), resp.ID))

	assert.Empty(t, alm.Compras, "la cola consultiva borra en físico")
	assert.ErrorIs(t, uc.Delete(context.Background(), resp.ID), domain.ErrNotFound)
}
