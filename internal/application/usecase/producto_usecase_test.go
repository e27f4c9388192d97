package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/application/inventory"
	"github.com/usm-ti/almacen-api/internal/application/usecase"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
	"github.com/usm-ti/almacen-api/internal/testutil"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func buildProductoUC(t *testing.T) (*usecase.ProductoUseCase, *testutil.AlmacenMemoria) {
	t.Helper()
	alm := testutil.NuevoAlmacen()
	libro := inventory.NewLibroUseCase(alm.MovimientosRepo(), alm.ProductosRepo(), alm.UsuariosRepo())
	uc := usecase.NewProductoUseCase(
		alm.ProductosRepo(),
		alm.InventarioRepo(),
		alm.CatalogoRepo("marcas", true),
		alm.CatalogoRepo("categorias", true),
		alm.CatalogoRepo("ubicaciones", true),
		libro,
		alm.TxRunner(),
	)
	return uc, alm
}

// ─────────────────────────────────────────────────────────────────────────────
// Alta
// ─────────────────────────────────────────────────────────────────────────────

func TestCreateProducto_AltaConStockInicial(t *testing.T) {
	uc, alm := buildProductoUC(t)
	alm.AgregarCatalogo("marcas", "Bosch", true)
	alm.AgregarCatalogo("categorias", "Herramientas", true)
	responsable := alm.AgregarUsuario("Ana Pérez", true)

	id, err := uc.Create(context.Background(), &responsable, dto.CreateProductoRequest{
		Codigo:       "TAL-020",
		Nombre:       "Taladro Percutor",
		Marca:        "Bosch",
		Categoria:    "Herramientas",
		StockInicial: 8,
		StockMinimo:  2,
	})

	require.NoError(t, err)
	require.NotZero(t, id)
	assert.Equal(t, 8, alm.Inventario[id].Stock)
	assert.Equal(t, entity.EstadoDisponible, alm.Inventario[id].EstadoStock)

	require.Len(t, alm.Movimientos, 1)
	mov := alm.Movimientos[0]
	assert.Equal(t, entity.MovimientoEntrada, mov.Tipo)
	assert.Equal(t, 8, mov.Cantidad)
	assert.Equal(t, "Producto nuevo - Taladro Percutor", mov.Referencia)
	require.NotNil(t, mov.ResponsableID)
	assert.Equal(t, responsable, *mov.ResponsableID)
}

func TestCreateProducto_StockCeroNoAsienta(t *testing.T) {
	uc, alm := buildProductoUC(t)

	id, err := uc.Create(context.Background(), nil, dto.CreateProductoRequest{
		Codigo:      "TOR-001",
		Nombre:      "Tornillos",
		StockMinimo: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, alm.Inventario[id].Stock)
	assert.Equal(t, entity.EstadoAgotado, alm.Inventario[id].EstadoStock)
	assert.Empty(t, alm.Movimientos, "alta sin stock no genera asiento")
}

func TestCreateProducto_CodigoDuplicado(t *testing.T) {
	uc, alm := buildProductoUC(t)
	alm.AgregarProducto("TOR-001", "Tornillos", 10, 2)

	_, err := uc.Create(context.Background(), nil, dto.CreateProductoRequest{
		Codigo: "TOR-001",
		Nombre: "Otros Tornillos",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProducto_FormatoInvalido(t *testing.T) {
	uc, _ := buildProductoUC(t)

	casos := []struct {
		nombre string
		in     dto.CreateProductoRequest
	}{
		{"código vacío", dto.CreateProductoRequest{Codigo: "", Nombre: "Tornillos"}},
		{"código con símbolos", dto.CreateProductoRequest{Codigo: "TOR_001!", Nombre: "Tornillos"}},
		{"nombre vacío", dto.CreateProductoRequest{Codigo: "TOR-001", Nombre: "  "}},
		{"nombre con símbolos", dto.CreateProductoRequest{Codigo: "TOR-001", Nombre: "Tornillos <xss>"}},
		{"stock negativo", dto.CreateProductoRequest{Codigo: "TOR-001", Nombre: "Tornillos", StockInicial: -1}},
		{"mínimo negativo", dto.CreateProductoRequest{Codigo: "TOR-001", Nombre: "Tornillos", StockMinimo: -1}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.Create(context.Background(), nil, c.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateProducto_NombreConAcentos(t *testing.T) {
	uc, _ := buildProductoUC(t)

	_, err := uc.Create(context.Background(), nil, dto.CreateProductoRequest{
		Codigo: "CIN-010",
		Nombre: "Cinta Métrica Ñandú",
	})

	assert.NoError(t, err, "acentos y eñes son parte del alfabeto aceptado")
}

func TestCreateProducto_ReferenciasInactivasSeAcumulan(t *testing.T) {
	uc, alm := buildProductoUC(t)
	alm.AgregarCatalogo("marcas", "Bosch", false)         // inactiva
	alm.AgregarCatalogo("ubicaciones", "Bodega 2", true)  // válida
	// "Pinturas" ni siquiera existe.

	_, err := uc.Create(context.Background(), nil, dto.CreateProductoRequest{
		Codigo:    "PIN-001",
		Nombre:    "Esmalte",
		Marca:     "Bosch",
		Categoria: "Pinturas",
		Ubicacion: "Bodega 2",
	})

	require.ErrorIs(t, err, domain.ErrInactiveReference)
	assert.Contains(t, err.Error(), "Marca")
	assert.Contains(t, err.Error(), "Categoría")
	assert.NotContains(t, err.Error(), "Ubicación", "la referencia válida no se reporta")
}

// ─────────────────────────────────────────────────────────────────────────────
// Edición
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdateProducto_StockSeMantieneConstante(t *testing.T) {
	uc, alm := buildProductoUC(t)
	id := alm.AgregarProducto("TOR-001", "Tornillos", 10, 2)

	err := uc.Update(context.Background(), id, dto.UpdateProductoRequest{
		Codigo:      "TOR-001",
		Nombre:      "Tornillos Galvanizados",
		StockMinimo: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, "Tornillos Galvanizados", alm.Productos[id].Nombre)
	assert.Equal(t, 4, alm.Productos[id].StockMinimo)
	assert.Equal(t, 10, alm.Inventario[id].Stock, "la edición nunca toca el stock")
	assert.Empty(t, alm.Movimientos, "la edición de metadatos no asienta nada")
}

func TestUpdateProducto_ReservadoBloqueaLaFila(t *testing.T) {
	uc, alm := buildProductoUC(t)
	id := alm.AgregarProducto("TAL-020", "Taladro", 5, 1)

	err := uc.Update(context.Background(), id, dto.UpdateProductoRequest{
		Codigo: "TAL-020",
		Nombre: "Taladro",
		Estado: entity.EstadoReservado,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.EstadoReservado, alm.Inventario[id].EstadoStock)
	assert.True(t, alm.Inventario[id].EstadoBloqueado, "reservado manual queda exento del barrido")
}

func TestUpdateProducto_EstadoVacioSeDeriva(t *testing.T) {
	uc, alm := buildProductoUC(t)
	id := alm.AgregarProducto("TAL-020", "Taladro", 5, 1)
	alm.Inventario[id].EstadoStock = entity.EstadoReservado
	alm.Inventario[id].EstadoBloqueado = true

	// Editar sin estado explícito suelta la reserva y deriva del stock.
	err := uc.Update(context.Background(), id, dto.UpdateProductoRequest{
		Codigo: "TAL-020",
		Nombre: "Taladro",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.EstadoDisponible, alm.Inventario[id].EstadoStock)
	assert.False(t, alm.Inventario[id].EstadoBloqueado)
}

func TestUpdateProducto_EstadoDesconocido(t *testing.T) {
	uc, alm := buildProductoUC(t)
	id := alm.AgregarProducto("TAL-020", "Taladro", 5, 1)

	err := uc.Update(context.Background(), id, dto.UpdateProductoRequest{
		Codigo: "TAL-020",
		Nombre: "Taladro",
		Estado: "en tránsito",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProducto_CodigoDeOtroProducto(t *testing.T) {
	uc, alm := buildProductoUC(t)
	alm.AgregarProducto("TOR-001", "Tornillos", 10, 2)
	id := alm.AgregarProducto("TAL-020", "Taladro", 5, 1)

	err := uc.Update(context.Background(), id, dto.UpdateProductoRequest{
		Codigo: "TOR-001",
		Nombre: "Taladro",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ─────────────────────────────────────────────────────────────────────────────
// Baja y consulta
// ─────────────────────────────────────────────────────────────────────────────

func TestDeleteProducto_EsSoftDelete(t *testing.T) {
	uc, alm := buildProductoUC(t)
	id := alm.AgregarProducto("TOR-001", "Tornillos", 10, 2)

	require.NoError(t, uc.Delete(context.Background(), id))

	require.Contains(t, alm.Productos, id, "la fila sigue existiendo")
	assert.False(t, alm.Productos[id].Activo)

	// Un producto inactivo deja de ser visible por GetByID.
	p, err := uc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDeleteProducto_Inexistente(t *testing.T) {
	uc, _ := buildProductoUC(t)

	assert.ErrorIs(t, uc.Delete(context.Background(), 999), domain.ErrNotFound)
}

func TestDeleteProducto_ElLibroSobrevive(t *testing.T) {
	uc, alm := buildProductoUC(t)
	libro := inventory.NewLibroUseCase(alm.MovimientosRepo(), alm.ProductosRepo(), alm.UsuariosRepo())

	id, err := uc.Create(context.Background(), nil, dto.CreateProductoRequest{
		Codigo:       "TAL-020",
		Nombre:       "Taladro Percutor",
		StockInicial: 8,
		StockMinimo:  2,
	})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(context.Background(), id))

	// Los asientos de un producto dado de baja siguen en el reporte general.
	rows, err := libro.ListarMovimientos(context.Background(), repository.FiltroMovimientos{ProductoID: id})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Producto nuevo - Taladro Percutor", rows[0].Referencia)

	// Y en el historial por producto.
	hist, err := libro.HistorialProducto(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.MovimientoEntrada, hist[0].Tipo)
}
