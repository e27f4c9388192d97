package solicitudes_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/application/inventory"
	"github.com/usm-ti/almacen-api/internal/application/solicitudes"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/testutil"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

type escenario struct {
	uc          *solicitudes.EntregasUseCase
	alm         *testutil.AlmacenMemoria
	responsable int64
	depto       int64
	solicitante int64
}

func buildEscenario(t *testing.T) escenario {
	t.Helper()
	alm := testutil.NuevoAlmacen()
	libro := inventory.NewLibroUseCase(alm.MovimientosRepo(), alm.ProductosRepo(), alm.UsuariosRepo())
	uc := solicitudes.NewEntregasUseCase(
		alm.SolicitudesRepo(),
		alm.CatalogoRepo("departamentos", true),
		alm.SolicitantesRepo(),
		libro,
		alm.TxRunner(),
	)
	return escenario{
		uc:          uc,
		alm:         alm,
		responsable: alm.AgregarUsuario("Luis Rojas", true),
		depto:       alm.AgregarCatalogo("departamentos", "Mantención", true),
		solicitante: alm.AgregarSolicitante("Carla Soto", true),
	}
}

func (e escenario) request(comentario string, lineas ...dto.LineaEntregaRequest) dto.RegistrarEntregaRequest {
	return dto.RegistrarEntregaRequest{
		DepartamentoID: e.depto,
		SolicitanteID:  e.solicitante,
		Comentario:     comentario,
		Lineas:         lineas,
	}
}

func linea(productoID int64, cantidad int) dto.LineaEntregaRequest {
	return dto.LineaEntregaRequest{ProductoID: productoID, Cantidad: cantidad}
}

// ─────────────────────────────────────────────────────────────────────────────
// Camino feliz
// ─────────────────────────────────────────────────────────────────────────────

func TestRegistrarEntrega_DescuentaYAsienta(t *testing.T) {
	e := buildEscenario(t)
	tornillos := e.alm.AgregarProducto("TOR-001", "Tornillos", 50, 5)
	taladro := e.alm.AgregarProducto("TAL-020", "Taladro", 3, 1)

	id, err := e.uc.RegistrarEntrega(context.Background(), e.responsable,
		e.request("Reparación sala 4", linea(tornillos, 20), linea(taladro, 1)))

	require.NoError(t, err)
	require.NotZero(t, id)
	assert.Equal(t, 30, e.alm.Inventario[tornillos].Stock)
	assert.Equal(t, 2, e.alm.Inventario[taladro].Stock)

	require.Len(t, e.alm.Movimientos, 2, "un asiento de Salida por línea")
	esperada := fmt.Sprintf("Solicitud #%d - Reparación sala 4", id)
	for _, m := range e.alm.Movimientos {
		assert.Equal(t, entity.MovimientoSalida, m.Tipo)
		assert.Equal(t, esperada, m.Referencia)
		require.NotNil(t, m.ResponsableID)
		assert.Equal(t, e.responsable, *m.ResponsableID)
	}
	assert.Equal(t, e.alm.Movimientos[0].TransaccionID, e.alm.Movimientos[1].TransaccionID,
		"los asientos de una entrega comparten transacción")
	assert.Len(t, e.alm.Detalles, 2)
}

func TestRegistrarEntrega_ConsolidaLineasRepetidas(t *testing.T) {
	e := buildEscenario(t)
	tornillos := e.alm.AgregarProducto("TOR-001", "Tornillos", 50, 5)

	_, err := e.uc.RegistrarEntrega(context.Background(), e.responsable,
		e.request("Pedido doble", linea(tornillos, 10), linea(tornillos, 5)))

	require.NoError(t, err)
	assert.Equal(t, 35, e.alm.Inventario[tornillos].Stock)
	require.Len(t, e.alm.Detalles, 1, "líneas del mismo producto se consolidan")
	assert.Equal(t, 15, e.alm.Detalles[0].Cantidad)
}

// ─────────────────────────────────────────────────────────────────────────────
// Todo o nada
// ─────────────────────────────────────────────────────────────────────────────

func TestRegistrarEntrega_StockInsuficienteRevierteTodo(t *testing.T) {
	e := buildEscenario(t)
	tornillos := e.alm.AgregarProducto("TOR-001", "Tornillos", 50, 5)
	taladro := e.alm.AgregarProducto("TAL-020", "Taladro", 3, 1)

	_, err := e.uc.RegistrarEntrega(context.Background(), e.responsable,
		e.request("Pedido grande", linea(tornillos, 20), linea(taladro, 10)))

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Taladro", "el error identifica al producto culpable")

	// Nada persiste: ni cabecera, ni detalles, ni descuentos, ni asientos.
	assert.Equal(t, 50, e.alm.Inventario[tornillos].Stock)
	assert.Equal(t, 3, e.alm.Inventario[taladro].Stock)
	assert.Empty(t, e.alm.Solicitudes)
	assert.Empty(t, e.alm.Detalles)
	assert.Empty(t, e.alm.Movimientos)
}

func TestRegistrarEntrega_ProductoInactivoRevierteTodo(t *testing.T) {
	e := buildEscenario(t)
	tornillos := e.alm.AgregarProducto("TOR-001", "Tornillos", 50, 5)
	retirado := e.alm.AgregarProducto("OBS-999", "Obsoleto", 10, 1)
	e.alm.Productos[retirado].Activo = false

	_, err := e.uc.RegistrarEntrega(context.Background(), e.responsable,
		e.request("Mixto", linea(tornillos, 5), linea(retirado, 1)))

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 50, e.alm.Inventario[tornillos].Stock)
	assert.Empty(t, e.alm.Solicitudes)
	assert.Empty(t, e.alm.Movimientos)
}

// ─────────────────────────────────────────────────────────────────────────────
// Validaciones de entrada y referencias
// ─────────────────────────────────────────────────────────────────────────────

func TestRegistrarEntrega_ComentarioYLineasObligatorios(t *testing.T) {
	e := buildEscenario(t)
	tornillos := e.alm.AgregarProducto("TOR-001", "Tornillos", 50, 5)

	_, err := e.uc.RegistrarEntrega(context.Background(), e.responsable,
		e.request("   ", linea(tornillos, 1)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "comentario en blanco")

	_, err = e.uc.RegistrarEntrega(context.Background(), e.responsable, e.request("Sin líneas"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrega sin líneas")

	_, err = e.uc.RegistrarEntrega(context.Background(), e.responsable,
		e.request("Cantidad mala", linea(tornillos, 0)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")
}

func TestRegistrarEntrega_DepartamentoInactivo(t *testing.T) {
	e := buildEscenario(t)
	tornillos := e.alm.AgregarProducto("TOR-001", "Tornillos", 50, 5)
	e.alm.Catalogos["departamentos"][e.depto].Activo = false

	_, err := e.uc.RegistrarEntrega(context.Background(), e.responsable,
		e.request("Pedido", linea(tornillos, 1)))

	require.ErrorIs(t, err, domain.ErrInactiveReference)
	assert.Contains(t, err.Error(), "Departamento")
}

func TestRegistrarEntrega_SolicitanteInactivo(t *testing.T) {
	e := buildEscenario(t)
	tornillos := e.alm.AgregarProducto("TOR-001", "Tornillos", 50, 5)
	e.alm.Solicitantes[e.solicitante].Activo = false

	_, err := e.uc.RegistrarEntrega(context.Background(), e.responsable,
		e.request("Pedido", linea(tornillos, 1)))

	require.ErrorIs(t, err, domain.ErrInactiveReference)
	assert.Contains(t, err.Error(), "Solicitante")
}

// ─────────────────────────────────────────────────────────────────────────────
// Consulta
// ─────────────────────────────────────────────────────────────────────────────

func TestObtener_DevuelveLineasResueltas(t *testing.T) {
	e := buildEscenario(t)
	tornillos := e.alm.AgregarProducto("TOR-001", "Tornillos", 50, 5)

	id, err := e.uc.RegistrarEntrega(context.Background(), e.responsable,
		e.request("Pedido", linea(tornillos, 4)))
	require.NoError(t, err)

	detalle, err := e.uc.Obtener(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Mantención", detalle.Departamento)
	assert.Equal(t, "Carla Soto", detalle.Solicitante)
	require.Len(t, detalle.Lineas, 1)
	assert.Equal(t, "Tornillos", detalle.Lineas[0].Producto)
	assert.Equal(t, "TOR-001", detalle.Lineas[0].Codigo)
	assert.Equal(t, 4, detalle.Lineas[0].Cantidad)
}

func TestObtener_Inexistente(t *testing.T) {
	e := buildEscenario(t)

	_, err := e.uc.Obtener(context.Background(), 999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
