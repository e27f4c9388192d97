package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/application/inventory"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	domaininv "github.com/usm-ti/almacen-api/internal/domain/inventory"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// ProductoUseCase CRUD de productos. El alta crea producto + fila de
// inventario en una transacción y asienta la Entrada inicial en el libro; en
// edición el stock nunca viene del request: se relee y se mantiene constante.
type ProductoUseCase struct {
	productoRepo repository.ProductoRepository
	invRepo      repository.InventarioRepository
	marcas       repository.CatalogoRepository
	categorias   repository.CatalogoRepository
	ubicaciones  repository.CatalogoRepository
	libro        *inventory.LibroUseCase
	txRunner     inventory.TxRunner
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(
	productoRepo repository.ProductoRepository,
	invRepo repository.InventarioRepository,
	marcas, categorias, ubicaciones repository.CatalogoRepository,
	libro *inventory.LibroUseCase,
	txRunner inventory.TxRunner,
) *ProductoUseCase {
	return &ProductoUseCase{
		productoRepo: productoRepo,
		invRepo:      invRepo,
		marcas:       marcas,
		categorias:   categorias,
		ubicaciones:  ubicaciones,
		libro:        libro,
		txRunner:     txRunner,
	}
}

// codigoValido: letras, números y guiones; no vacío.
func codigoValido(codigo string) bool {
	if codigo == "" {
		return false
	}
	for _, r := range codigo {
		if r == '-' {
			continue
		}
		if !esAlfanumerico(r) {
			return false
		}
	}
	return true
}

// nombreValido: letras, números y espacios; no vacío.
func nombreValido(nombre string) bool {
	if strings.TrimSpace(nombre) == "" {
		return false
	}
	for _, r := range nombre {
		if r == ' ' {
			continue
		}
		if !esAlfanumerico(r) {
			return false
		}
	}
	return true
}

func esAlfanumerico(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= 'À' && r <= 'ÿ') // nombres con acentos o ñ
}

// resolverReferencias resuelve marca/categoría/ubicación por nombre exigiendo
// filas activas. Devuelve ErrInactiveReference nombrando los campos que fallan.
func (uc *ProductoUseCase) resolverReferencias(marca, categoria, ubicacion string) (marcaID, categoriaID, ubicacionID *int64, err error) {
	var inactivas []string

	resolver := func(repo repository.CatalogoRepository, nombre, campo string) *int64 {
		if nombre == "" {
			return nil
		}
		row, e := repo.GetPorNombre(nombre, true)
		if e != nil || row == nil {
			inactivas = append(inactivas, campo)
			return nil
		}
		return &row.ID
	}

	marcaID = resolver(uc.marcas, marca, "Marca")
	categoriaID = resolver(uc.categorias, categoria, "Categoría")
	ubicacionID = resolver(uc.ubicaciones, ubicacion, "Ubicación")

	if len(inactivas) > 0 {
		return nil, nil, nil, fmt.Errorf("%s: %w", strings.Join(inactivas, ", "), domain.ErrInactiveReference)
	}
	return marcaID, categoriaID, ubicacionID, nil
}

// Create valida, inserta producto + inventario en una transacción y asienta la
// Entrada inicial ("Producto nuevo"). Stock inicial cero no genera asiento:
// el libro registra deltas y un alta sin stock no cambia nada.
func (uc *ProductoUseCase) Create(ctx context.Context, responsableID *int64, in dto.CreateProductoRequest) (int64, error) {
	in.Codigo = strings.TrimSpace(in.Codigo)
	in.Nombre = strings.TrimSpace(in.Nombre)
	if !codigoValido(in.Codigo) || !nombreValido(in.Nombre) {
		return 0, domain.ErrInvalidInput
	}
	if in.StockInicial < 0 || in.StockMinimo < 0 {
		return 0, domain.ErrInvalidInput
	}
	existente, _ := uc.productoRepo.GetByCodigo(in.Codigo)
	if existente != nil {
		return 0, domain.ErrDuplicate
	}
	marcaID, categoriaID, ubicacionID, err := uc.resolverReferencias(in.Marca, in.Categoria, in.Ubicacion)
	if err != nil {
		return 0, err
	}

	producto := &entity.Producto{
		Codigo:      in.Codigo,
		Nombre:      in.Nombre,
		MarcaID:     marcaID,
		CategoriaID: categoriaID,
		StockMinimo: in.StockMinimo,
		Activo:      true,
	}
	txID := uuid.New().String()
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error {
		if err := productoRepo.Create(producto); err != nil {
			return err
		}
		inv := &entity.Inventario{
			ProductoID:  producto.ID,
			UbicacionID: ubicacionID,
			Stock:       in.StockInicial,
			EstadoStock: domaininv.EstadoPara(in.StockInicial, in.StockMinimo),
		}
		if err := invRepo.Insert(inv); err != nil {
			return err
		}
		if in.StockInicial == 0 {
			return nil
		}
		// El asiento es el último paso: el lado de inventario ya quedó decidido.
		return uc.libro.RegistrarMovimientoConRepos(movRepo, productoRepo, inventory.MovimientoInput{
			ProductoID:    producto.ID,
			Tipo:          entity.MovimientoEntrada,
			Cantidad:      in.StockInicial,
			ResponsableID: responsableID,
			Referencia:    "Producto nuevo - " + producto.Nombre,
			TransaccionID: txID,
		})
	})
	if err != nil {
		return 0, err
	}
	return producto.ID, nil
}

// Update reescribe metadatos y ubicación/estado. El stock se relee de la base
// y se mantiene constante durante la edición; el único camino legítimo para
// cambiarlo en una edición es InventarioUseCase.RegistrarDeltaStock.
func (uc *ProductoUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductoRequest) error {
	in.Codigo = strings.TrimSpace(in.Codigo)
	in.Nombre = strings.TrimSpace(in.Nombre)
	if !codigoValido(in.Codigo) || !nombreValido(in.Nombre) {
		return domain.ErrInvalidInput
	}
	if in.StockMinimo < 0 {
		return domain.ErrInvalidInput
	}
	producto, err := uc.productoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	if otro, _ := uc.productoRepo.GetByCodigo(in.Codigo); otro != nil && otro.ID != id {
		return domain.ErrDuplicate
	}
	marcaID, categoriaID, ubicacionID, err := uc.resolverReferencias(in.Marca, in.Categoria, in.Ubicacion)
	if err != nil {
		return err
	}

	// Stock actual releído; el request no lo trae.
	inv, err := uc.invRepo.GetByProducto(id)
	if err != nil {
		return err
	}
	stock := 0
	if inv != nil {
		stock = inv.Stock
	}

	estado := in.Estado
	bloqueado := false
	switch estado {
	case "":
		estado = domaininv.EstadoPara(stock, in.StockMinimo)
	case entity.EstadoReservado:
		// Reserva manual: se bloquea contra el barrido hasta soltarla.
		bloqueado = true
	case entity.EstadoDisponible, entity.EstadoStockBajo, entity.EstadoAgotado:
		// Estado explícito sin bloqueo; el siguiente barrido lo normaliza.
	default:
		return domain.ErrInvalidInput
	}

	producto.Codigo = in.Codigo
	producto.Nombre = in.Nombre
	producto.MarcaID = marcaID
	producto.CategoriaID = categoriaID
	producto.StockMinimo = in.StockMinimo

	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error {
		if err := productoRepo.Update(producto); err != nil {
			return err
		}
		nuevo := &entity.Inventario{
			ProductoID:      id,
			UbicacionID:     ubicacionID,
			Stock:           stock,
			EstadoStock:     estado,
			EstadoBloqueado: bloqueado,
		}
		if inv == nil {
			return invRepo.Insert(nuevo)
		}
		nuevo.ID = inv.ID
		return invRepo.Update(nuevo)
	})
}

// Delete marca el producto como inactivo. Los asientos del libro y los
// detalles de entrega que lo referencian quedan intactos.
func (uc *ProductoUseCase) Delete(ctx context.Context, id int64) error {
	producto, err := uc.productoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	return uc.productoRepo.SoftDelete(id)
}

// GetByID devuelve un producto por ID (nil si no existe o está inactivo).
func (uc *ProductoUseCase) GetByID(ctx context.Context, id int64) (*entity.Producto, error) {
	producto, err := uc.productoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil || !producto.Activo {
		return nil, nil
	}
	return producto, nil
}
