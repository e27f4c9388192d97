package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usm-ti/almacen-api/internal/application/inventory"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
	"github.com/usm-ti/almacen-api/internal/testutil"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func buildLibro(t *testing.T) (*inventory.LibroUseCase, *testutil.AlmacenMemoria) {
	t.Helper()
	alm := testutil.NuevoAlmacen()
	uc := inventory.NewLibroUseCase(alm.MovimientosRepo(), alm.ProductosRepo(), alm.UsuariosRepo())
	return uc, alm
}

func ptrInt64(v int64) *int64 { return &v }

// ─────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ─────────────────────────────────────────────────────────────────────────────

func TestRegistrarMovimiento_TipoInvalido(t *testing.T) {
	uc, alm := buildLibro(t)
	id := alm.AgregarProducto("TOR-001", "Tornillos", 10, 2)

	err := uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
		ProductoID: id,
		Tipo:       "Ajuste",
		Cantidad:   5,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido debe rechazarse")
	assert.Empty(t, alm.Movimientos, "no debe quedar asiento en el libro")
}

func TestRegistrarMovimiento_CantidadNoPositiva(t *testing.T) {
	uc, alm := buildLibro(t)
	id := alm.AgregarProducto("TOR-001", "Tornillos", 10, 2)

	for _, cantidad := range []int{0, -3} {
		err := uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
			ProductoID: id,
			Tipo:       entity.MovimientoEntrada,
			Cantidad:   cantidad,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", cantidad)
	}
	assert.Empty(t, alm.Movimientos)
}

// ─────────────────────────────────────────────────────────────────────────────
// Síntesis de referencia
// ─────────────────────────────────────────────────────────────────────────────

func TestRegistrarMovimiento_ReferenciaSintetizada(t *testing.T) {
	uc, alm := buildLibro(t)
	id := alm.AgregarProducto("TAL-020", "Taladro Percutor", 4, 1)

	casos := []struct {
		tipo       string
		referencia string
	}{
		{entity.MovimientoEntrada, "Entrada de stock - Taladro Percutor"},
		{entity.MovimientoSalida, "Salida de stock - Taladro Percutor"},
	}
	for _, c := range casos {
		err := uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
			ProductoID: id,
			Tipo:       c.tipo,
			Cantidad:   2,
		})
		require.NoError(t, err)
	}

	require.Len(t, alm.Movimientos, 2)
	assert.Equal(t, casos[0].referencia, alm.Movimientos[0].Referencia)
	assert.Equal(t, casos[1].referencia, alm.Movimientos[1].Referencia)
}

func TestRegistrarMovimiento_ProductoSinNombre(t *testing.T) {
	uc, alm := buildLibro(t)

	// Producto inexistente: la referencia usa el marcador de desconocido.
	err := uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
		ProductoID: 999,
		Tipo:       entity.MovimientoEntrada,
		Cantidad:   1,
	})

	require.NoError(t, err)
	require.Len(t, alm.Movimientos, 1)
	assert.Equal(t, "Entrada de stock - Producto Desconocido", alm.Movimientos[0].Referencia)
}

func TestRegistrarMovimiento_ReferenciaExplicitaSeRespeta(t *testing.T) {
	uc, alm := buildLibro(t)
	id := alm.AgregarProducto("TAL-020", "Taladro", 4, 1)

	err := uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
		ProductoID: id,
		Tipo:       entity.MovimientoSalida,
		Cantidad:   1,
		Referencia: "Solicitud #7 - Mantenimiento",
	})

	require.NoError(t, err)
	assert.Equal(t, "Solicitud #7 - Mantenimiento", alm.Movimientos[0].Referencia,
		"la referencia del caller no debe sobreescribirse")
}

// ─────────────────────────────────────────────────────────────────────────────
// Degradación silenciosa del responsable
// ─────────────────────────────────────────────────────────────────────────────

func TestRegistrarMovimiento_ResponsableInexistenteSeDegrada(t *testing.T) {
	uc, alm := buildLibro(t)
	id := alm.AgregarProducto("TOR-001", "Tornillos", 10, 2)

	err := uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
		ProductoID:    id,
		Tipo:          entity.MovimientoEntrada,
		Cantidad:      3,
		ResponsableID: ptrInt64(12345),
	})

	require.NoError(t, err, "un responsable que no resuelve nunca debe fallar el asiento")
	require.Len(t, alm.Movimientos, 1)
	assert.Nil(t, alm.Movimientos[0].ResponsableID, "el asiento queda sin responsable")
}

func TestRegistrarMovimiento_ResponsableValidoSeConserva(t *testing.T) {
	uc, alm := buildLibro(t)
	id := alm.AgregarProducto("TOR-001", "Tornillos", 10, 2)
	usuarioID := alm.AgregarUsuario("Ana Pérez", true)

	err := uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
		ProductoID:    id,
		Tipo:          entity.MovimientoEntrada,
		Cantidad:      3,
		ResponsableID: ptrInt64(usuarioID),
	})

	require.NoError(t, err)
	require.NotNil(t, alm.Movimientos[0].ResponsableID)
	assert.Equal(t, usuarioID, *alm.Movimientos[0].ResponsableID)
}

// ─────────────────────────────────────────────────────────────────────────────
// Reporte
// ─────────────────────────────────────────────────────────────────────────────

func TestListarMovimientos_NumeracionYOrden(t *testing.T) {
	uc, alm := buildLibro(t)
	id := alm.AgregarProducto("TOR-001", "Tornillos", 10, 2)

	for i := 0; i < 3; i++ {
		require.NoError(t, uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
			ProductoID: id,
			Tipo:       entity.MovimientoEntrada,
			Cantidad:   i + 1,
		}))
	}

	rows, err := uc.ListarMovimientos(context.Background(), repository.FiltroMovimientos{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Cronológico inverso: el último asiento sale primero, numerado desde 1.
	assert.Equal(t, 1, rows[0].Nro)
	assert.Equal(t, 3, rows[0].Cantidad)
	assert.Equal(t, 3, rows[2].Nro)
	assert.Equal(t, 1, rows[2].Cantidad)
	assert.Equal(t, "N/A", rows[0].Responsable, "asiento sin responsable se reporta N/A")
}

func TestListarMovimientos_FiltroTipoInvalido(t *testing.T) {
	uc, _ := buildLibro(t)

	_, err := uc.ListarMovimientos(context.Background(), repository.FiltroMovimientos{Tipo: "Ajuste"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListarMovimientos_NumeracionConOffset(t *testing.T) {
	uc, alm := buildLibro(t)
	id := alm.AgregarProducto("TOR-001", "Tornillos", 10, 2)

	for i := 0; i < 2; i++ {
		require.NoError(t, uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
			ProductoID: id,
			Tipo:       entity.MovimientoEntrada,
			Cantidad:   1,
		}))
	}

	rows, err := uc.ListarMovimientos(context.Background(), repository.FiltroMovimientos{Offset: 10})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 11, rows[0].Nro, "la numeración continúa desde el offset")
}

// ─────────────────────────────────────────────────────────────────────────────
// Historial por producto
// ─────────────────────────────────────────────────────────────────────────────

func TestHistorialProducto_CronologicoConTransaccion(t *testing.T) {
	uc, alm := buildLibro(t)
	id := alm.AgregarProducto("TOR-001", "Tornillos", 10, 2)
	otro := alm.AgregarProducto("CLA-002", "Clavos", 5, 1)

	require.NoError(t, uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
		ProductoID: id, Tipo: entity.MovimientoEntrada, Cantidad: 4, TransaccionID: "tx-a",
	}))
	require.NoError(t, uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
		ProductoID: otro, Tipo: entity.MovimientoEntrada, Cantidad: 9,
	}))
	require.NoError(t, uc.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
		ProductoID: id, Tipo: entity.MovimientoSalida, Cantidad: 1, TransaccionID: "tx-b",
	}))

	rows, err := uc.HistorialProducto(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, rows, 2, "solo los asientos del producto pedido")

	// Cronológico directo: primero la entrada, después la salida.
	assert.Equal(t, 1, rows[0].Nro)
	assert.Equal(t, entity.MovimientoEntrada, rows[0].Tipo)
	assert.Equal(t, "tx-a", rows[0].TransaccionID)
	assert.Equal(t, 2, rows[1].Nro)
	assert.Equal(t, entity.MovimientoSalida, rows[1].Tipo)
	assert.Equal(t, "tx-b", rows[1].TransaccionID)
}

func TestHistorialProducto_IDInvalido(t *testing.T) {
	uc, _ := buildLibro(t)

	_, err := uc.HistorialProducto(context.Background(), 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
