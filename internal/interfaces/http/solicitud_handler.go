package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/application/solicitudes"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// SolicitudHandler maneja las entregas internas (protegido).
type SolicitudHandler struct {
	uc *solicitudes.EntregasUseCase
}

// NewSolicitudHandler construye el handler.
func NewSolicitudHandler(uc *solicitudes.EntregasUseCase) *SolicitudHandler {
	return &SolicitudHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar entrega (descuenta stock y asienta Salidas, todo o nada)
// @Tags         solicitudes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarEntregaRequest  true  "Cabecera + líneas"
// @Success      201   {object}  map[string]int64
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/solicitudes [post]
func (h *SolicitudHandler) Create(c *fiber.Ctx) error {
	var in dto.RegistrarEntregaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.uc.RegistrarEntrega(c.UserContext(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		case errors.Is(err, domain.ErrInactiveReference):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INACTIVE_REFERENCE", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado o inactivo"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "comentario y al menos una línea válida son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// List godoc
// @Summary      Historial de entregas
// @Tags         solicitudes
// @Security     Bearer
// @Produce      json
// @Param        busqueda      query  string  false  "Sobre el comentario, parcial"
// @Param        departamento  query  string  false  "Departamento exacto"
// @Param        desde         query  string  false  "Fecha RFC3339"
// @Param        hasta         query  string  false  "Fecha RFC3339"
// @Param        limit         query  int     false  "Límite"  default(50)
// @Success      200  {array}  dto.SolicitudResponse
// @Router       /api/solicitudes [get]
func (h *SolicitudHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 {
		limit = 50
	}
	filtro := repository.FiltroSolicitudes{
		Busqueda:     c.Query("busqueda"),
		Departamento: c.Query("departamento"),
		Limit:        limit,
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
	out, err := h.uc.Listar(c.UserContext(), filtro)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una entrega con sus líneas
// @Tags         solicitudes
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la entrega"
// @Success      200  {object}  dto.SolicitudDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id} [get]
func (h *SolicitudHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.Obtener(c.UserContext(), int64(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrega no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
