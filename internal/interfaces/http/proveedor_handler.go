package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/application/usecase"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// ProveedorHandler maneja el directorio de proveedores (protegido).
type ProveedorHandler struct {
	uc *usecase.ProveedorUseCase
}

// NewProveedorHandler construye el handler.
func NewProveedorHandler(uc *usecase.ProveedorUseCase) *ProveedorHandler {
	return &ProveedorHandler{uc: uc}
}

func (h *ProveedorHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un proveedor con ese nombre"})
	case errors.Is(err, domain.ErrInactiveReference):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INACTIVE_REFERENCE", Message: "alguna categoría no existe o está inactiva"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del proveedor inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveProveedorRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.ProveedorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *ProveedorHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proveedores activos
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        categoria       query  string  false  "Categoría exacta"
// @Param        valoracion      query  int     false  "1..5"
// @Param        manejo_precios  query  string  false  "Bajo | Medio | Alto"
// @Success      200  {array}  dto.ProveedorResponse
// @Router       /api/proveedores [get]
func (h *ProveedorHandler) List(c *fiber.Ctx) error {
	filtro := repository.FiltroProveedores{
		Categoria:     c.Query("categoria"),
		Valoracion:    c.QueryInt("valoracion", 0),
		ManejoPrecios: c.Query("manejo_precios"),
	}
	out, err := h.uc.List(c.UserContext(), filtro)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del proveedor"
// @Success      200  {object}  dto.ProveedorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [get]
func (h *ProveedorHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), int64(id))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del proveedor"
// @Param        body  body  dto.SaveProveedorRequest  true  "Datos a actualizar"
// @Success      204   "sin contenido"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [put]
func (h *ProveedorHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.SaveProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Update(c.UserContext(), int64(id), in); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Desactivar proveedor (borrado lógico)
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del proveedor"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [delete]
func (h *ProveedorHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.UserContext(), int64(id)); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
