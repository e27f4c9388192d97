package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/application/usecase"
	"github.com/usm-ti/almacen-api/internal/domain"
)

// CompraHandler maneja la cola consultiva de solicitudes de compra (protegido).
type CompraHandler struct {
	uc *usecase.CompraUseCase
}

// NewCompraHandler construye el handler.
func NewCompraHandler(uc *usecase.CompraUseCase) *CompraHandler {
	return &CompraHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de compra
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompraRequest  true  "producto, cantidad, motivo, prioridad"
// @Success      201   {object}  dto.CompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *CompraHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto, cantidad > 0, motivo y prioridad válida son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar solicitudes de compra (prioridad Alta, Media, Baja; luego fecha)
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        estado     query  string  false  "Estado exacto"
// @Param        prioridad  query  string  false  "Alta | Media | Baja"
// @Success      200  {array}  dto.CompraResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/compras [get]
func (h *CompraHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("estado"), c.Query("prioridad"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado o prioridad desconocidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateEstado godoc
// @Summary      Cambiar estado de una solicitud de compra
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la solicitud"
// @Param        body  body  dto.UpdateCompraEstadoRequest  true  "estado"
// @Success      204   "sin contenido"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/estado [put]
func (h *CompraHandler) UpdateEstado(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.UpdateCompraEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateEstado(c.UserContext(), int64(id), in.Estado); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado desconocido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar solicitud de compra
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la solicitud"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [delete]
func (h *CompraHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.UserContext(), int64(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
