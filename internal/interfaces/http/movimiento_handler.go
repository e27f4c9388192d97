package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/application/inventory"
	"github.com/usm-ti/almacen-api/internal/application/notify"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// MovimientoHandler sirve el reporte del libro de movimientos, las alertas de
// stock bajo y el chequeo de conciliación (protegido).
type MovimientoHandler struct {
	libro        *inventory.LibroUseCase
	inventarioUC *inventory.InventarioUseCase
	notifier     *notify.Notifier
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(libro *inventory.LibroUseCase, inventarioUC *inventory.InventarioUseCase, notifier *notify.Notifier) *MovimientoHandler {
	return &MovimientoHandler{libro: libro, inventarioUC: inventarioUC, notifier: notifier}
}

// List godoc
// @Summary      Reporte de movimientos (cronológico inverso)
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        tipo         query  string  false  "Entrada | Salida"
// @Param        producto_id  query  int     false  "ID del producto"
// @Param        desde        query  string  false  "Fecha RFC3339"
// @Param        hasta        query  string  false  "Fecha RFC3339"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovimientoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *MovimientoHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	filtro := repository.FiltroMovimientos{
		Tipo:       c.Query("tipo"),
		ProductoID: int64(c.QueryInt("producto_id", 0)),
		Limit:      limit,
		Offset:     offset,
	}
	if v := c.Query("desde"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser RFC3339"})
		}
		filtro.Desde = &t
	}
	if v := c.Query("hasta"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser RFC3339"})
		}
		filtro.Hasta = &t
	}
	out, err := h.libro.ListarMovimientos(c.UserContext(), filtro)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo debe ser Entrada o Salida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// HistorialProducto godoc
// @Summary      Historial de movimientos de un producto (cronológico)
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {array}  dto.HistorialMovimientoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/movimientos [get]
func (h *MovimientoHandler) HistorialProducto(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.libro.HistorialProducto(c.UserContext(), int64(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Alertas godoc
// @Summary      Productos con stock en o por debajo del mínimo
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertaStockResponse
// @Router       /api/inventario/alertas [get]
func (h *MovimientoHandler) Alertas(c *fiber.Ctx) error {
	out, err := h.inventarioUC.AlertasStockBajo(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AlertasSnapshot godoc
// @Summary      Último snapshot del notificador periódico de stock bajo
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventario/alertas/snapshot [get]
func (h *MovimientoHandler) AlertasSnapshot(c *fiber.Ctx) error {
	alertas, ultimoOK := h.notifier.Alertas()
	out := make([]dto.AlertaStockResponse, 0, len(alertas))
	for _, a := range alertas {
		out = append(out, dto.AlertaStockResponse{
			ProductoID:  a.ProductoID,
			Producto:    a.Producto,
			Categoria:   a.Categoria,
			Stock:       a.Stock,
			StockMinimo: a.StockMinimo,
		})
	}
	return c.JSON(fiber.Map{"alertas": out, "actualizado": ultimoOK})
}

// Reconciliar godoc
// @Summary      Conciliación contador-vs-libro (solo lectura)
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DiscrepanciaResponse
// @Router       /api/inventario/conciliacion [get]
func (h *MovimientoHandler) Reconciliar(c *fiber.Ctx) error {
	out, err := h.inventarioUC.Reconciliar(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
