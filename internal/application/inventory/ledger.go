package inventory

import (
	"context"

	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// LibroUseCase registra asientos en el libro de movimientos (append-only) y
// sirve el reporte cronológico inverso. El libro registra magnitudes de
// cambio con signo en el tipo, nunca valores absolutos de stock.
type LibroUseCase struct {
	movRepo      repository.MovimientoRepository
	productoRepo repository.ProductoRepository
	usuarioRepo  repository.UsuarioRepository
}

// NewLibroUseCase construye el caso de uso del libro.
func NewLibroUseCase(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	usuarioRepo repository.UsuarioRepository,
) *LibroUseCase {
	return &LibroUseCase{movRepo: movRepo, productoRepo: productoRepo, usuarioRepo: usuarioRepo}
}

// MovimientoInput entrada para registrar un asiento. Cantidad es la magnitud
// ya resuelta por el caller (siempre positiva); el tipo lleva la dirección.
type MovimientoInput struct {
	ProductoID    int64
	Tipo          string // Entrada | Salida
	Cantidad      int
	ResponsableID *int64
	Referencia    string // vacío = se sintetiza desde tipo + nombre del producto
	TransaccionID string
}

// RegistrarMovimiento inserta un asiento usando los repositorios propios
// (fuera de transacción). La fecha la asigna el servidor al insertar.
func (uc *LibroUseCase) RegistrarMovimiento(ctx context.Context, input MovimientoInput) error {
	return uc.RegistrarMovimientoConRepos(uc.movRepo, uc.productoRepo, input)
}

// RegistrarMovimientoConRepos inserta el asiento con los repositorios del
// caller (misma transacción). Debe ser el último paso de toda operación que
// afecta stock: el caller invoca después de decidir el lado de inventario.
func (uc *LibroUseCase) RegistrarMovimientoConRepos(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	input MovimientoInput,
) error {
	if input.Tipo != entity.MovimientoEntrada && input.Tipo != entity.MovimientoSalida {
		return domain.ErrInvalidInput
	}
	if input.Cantidad <= 0 {
		return domain.ErrInvalidInput
	}

	// Responsable que no resuelve se degrada a "sin responsable", nunca error.
	responsable := input.ResponsableID
	if responsable != nil {
		ok, err := uc.usuarioRepo.Exists(*responsable)
		if err != nil || !ok {
			responsable = nil
		}
	}

	referencia := input.Referencia
	if referencia == "" {
		nombre, err := productoRepo.GetNombre(input.ProductoID)
		if err != nil || nombre == "" {
			nombre = "Producto Desconocido"
		}
		switch input.Tipo {
		case entity.MovimientoEntrada:
			referencia = "Entrada de stock - " + nombre
		case entity.MovimientoSalida:
			referencia = "Salida de stock - " + nombre
		}
	}

	mov := &entity.Movimiento{
		ProductoID:    input.ProductoID,
		Tipo:          input.Tipo,
		Cantidad:      input.Cantidad,
		ResponsableID: responsable,
		Referencia:    referencia,
		TransaccionID: input.TransaccionID,
	}
	return movRepo.Create(mov)
}

// ListarMovimientos devuelve el reporte de movimientos con filtros opcionales,
// numerado en orden cronológico inverso.
func (uc *LibroUseCase) ListarMovimientos(ctx context.Context, filtro repository.FiltroMovimientos) ([]dto.MovimientoResponse, error) {
	if filtro.Tipo != "" && filtro.Tipo != entity.MovimientoEntrada && filtro.Tipo != entity.MovimientoSalida {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.movRepo.List(filtro)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoResponse, 0, len(rows))
	for i, m := range rows {
		out = append(out, dto.MovimientoResponse{
			Nro:         filtro.Offset + i + 1,
			Fecha:       m.Fecha,
			Tipo:        m.Tipo,
			Producto:    m.Producto,
			Cantidad:    m.Cantidad,
			Responsable: m.Responsable,
			Referencia:  m.Referencia,
		})
	}
	return out, nil
}

// HistorialProducto devuelve todos los asientos de un producto en orden
// cronológico, para auditoría. Incluye productos dados de baja: el libro
// sobrevive al soft delete.
func (uc *LibroUseCase) HistorialProducto(ctx context.Context, productoID int64) ([]dto.HistorialMovimientoResponse, error) {
	if productoID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.movRepo.ListByProducto(productoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistorialMovimientoResponse, 0, len(rows))
	for i, m := range rows {
		out = append(out, dto.HistorialMovimientoResponse{
			Nro:           i + 1,
			Fecha:         m.Fecha,
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			Referencia:    m.Referencia,
			TransaccionID: m.TransaccionID,
		})
	}
	return out, nil
}
