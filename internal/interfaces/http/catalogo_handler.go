package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/application/usecase"
	"github.com/usm-ti/almacen-api/internal/domain"
)

// CatalogoHandler sirve una tabla de referencia (categorías, marcas,
// ubicaciones, departamentos) detrás del mismo juego de rutas. Un handler por
// tabla, cableado en el router.
type CatalogoHandler struct {
	uc *usecase.CatalogoUseCase
}

// NewCatalogoHandler construye el handler para una tabla concreta.
func NewCatalogoHandler(uc *usecase.CatalogoUseCase) *CatalogoHandler {
	return &CatalogoHandler{uc: uc}
}

func mapCatalogoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el nombre ya existe"})
	case errors.Is(err, domain.ErrSinSoftDelete):
		return c.Status(fiber.StatusMethodNotAllowed).JSON(dto.ErrorResponse{Code: "NO_SOFT_DELETE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre requerido"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// List godoc
// @Summary      Listar valores de la tabla de referencia
// @Tags         catalogos
// @Security     Bearer
// @Produce      json
// @Param        solo_activos  query  bool  false  "Solo filas activas"  default(false)
// @Success      200  {array}  dto.CatalogoItemResponse
// @Router       /api/catalogos/{tabla} [get]
func (h *CatalogoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryBool("solo_activos", false))
	if err != nil {
		return mapCatalogoError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar un valor
// @Tags         catalogos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCatalogoRequest  true  "nombre"
// @Success      201   {object}  dto.CatalogoItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalogos/{tabla} [post]
func (h *CatalogoHandler) Add(c *fiber.Ctx) error {
	var in dto.AddCatalogoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Add(c.UserContext(), in.Nombre)
	if err != nil {
		return mapCatalogoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Rename godoc
// @Summary      Renombrar un valor
// @Tags         catalogos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la fila"
// @Param        body  body  dto.AddCatalogoRequest  true  "nombre nuevo"
// @Success      204   "sin contenido"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalogos/{tabla}/{id} [put]
func (h *CatalogoHandler) Rename(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.AddCatalogoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Rename(c.UserContext(), int64(id), in.Nombre); err != nil {
		return mapCatalogoError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetActivo godoc
// @Summary      Activar o desactivar un valor (405 si la tabla no lo soporta)
// @Tags         catalogos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la fila"
// @Param        body  body  dto.SetActivoRequest  true  "activo"
// @Success      204   "sin contenido"
// @Failure      405   {object}  dto.ErrorResponse
// @Router       /api/catalogos/{tabla}/{id}/activo [put]
func (h *CatalogoHandler) SetActivo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.SetActivoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetActivo(c.UserContext(), int64(id), in.Activo); err != nil {
		return mapCatalogoError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SolicitanteHandler maneja los solicitantes de entregas (protegido).
type SolicitanteHandler struct {
	uc *usecase.SolicitanteUseCase
}

// NewSolicitanteHandler construye el handler.
func NewSolicitanteHandler(uc *usecase.SolicitanteUseCase) *SolicitanteHandler {
	return &SolicitanteHandler{uc: uc}
}

// List godoc
// @Summary      Listar solicitantes
// @Tags         solicitantes
// @Security     Bearer
// @Produce      json
// @Param        solo_activos  query  bool  false  "Solo activos"  default(false)
// @Success      200  {array}  dto.SolicitanteResponse
// @Router       /api/solicitantes [get]
func (h *SolicitanteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryBool("solo_activos", false))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Registrar solicitante
// @Tags         solicitantes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddSolicitanteRequest  true  "cedula, nombre, departamento"
// @Success      201   {object}  dto.SolicitanteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/solicitantes [post]
func (h *SolicitanteHandler) Add(c *fiber.Ctx) error {
	var in dto.AddSolicitanteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Add(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la cédula ya está registrada"})
		case errors.Is(err, domain.ErrInactiveReference):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INACTIVE_REFERENCE", Message: "el departamento no existe o está inactivo"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cédula y nombre son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetActivo godoc
// @Summary      Activar o desactivar un solicitante
// @Tags         solicitantes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del solicitante"
// @Param        body  body  dto.SetActivoRequest  true  "activo"
// @Success      204   "sin contenido"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/solicitantes/{id}/activo [put]
func (h *SolicitanteHandler) SetActivo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.SetActivoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetActivo(c.UserContext(), int64(id), in.Activo); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitante no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
