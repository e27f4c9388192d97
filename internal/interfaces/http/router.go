package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/usm-ti/almacen-api/internal/application/auth"
	"github.com/usm-ti/almacen-api/internal/application/inventory"
	"github.com/usm-ti/almacen-api/internal/application/notify"
	"github.com/usm-ti/almacen-api/internal/application/solicitudes"
	"github.com/usm-ti/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductoUC      *usecase.ProductoUseCase
	InventarioUC    *inventory.InventarioUseCase
	Libro           *inventory.LibroUseCase
	EntregasUC      *solicitudes.EntregasUseCase
	CompraUC        *usecase.CompraUseCase
	ProveedorUC     *usecase.ProveedorUseCase
	CategoriasUC    *usecase.CatalogoUseCase
	MarcasUC        *usecase.CatalogoUseCase
	UbicacionesUC   *usecase.CatalogoUseCase
	DepartamentosUC *usecase.CatalogoUseCase
	SolicitantesUC  *usecase.SolicitanteUseCase
	Notifier        *notify.Notifier
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// El cambio de contraseña opera sobre la cuenta del token
	protected.Put("/auth/password", authHandler.UpdatePassword)

	// Cuentas (solo admin)
	usuarios := protected.Group("/usuarios", RequireAdmin())
	usuarios.Get("/", authHandler.ListUsers)
	usuarios.Post("/", authHandler.CreateUser)
	usuarios.Put("/:id/activo", authHandler.SetActivo)

	// Productos e inventario
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC, deps.InventarioUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Put("/:id", productoHandler.Update)
	productos.Delete("/:id", productoHandler.Delete)
	productos.Post("/:id/stock", productoHandler.AddStock)
	productos.Put("/:id/stock", productoHandler.SetStock)

	// Libro de movimientos, alertas y conciliación
	movHandler := NewMovimientoHandler(deps.Libro, deps.InventarioUC, deps.Notifier)
	productos.Get("/:id/movimientos", movHandler.HistorialProducto)
	protected.Get("/movimientos", movHandler.List)
	inventario := protected.Group("/inventario")
	inventario.Get("/alertas", movHandler.Alertas)
	inventario.Get("/alertas/snapshot", movHandler.AlertasSnapshot)
	inventario.Get("/conciliacion", movHandler.Reconciliar)

	// Entregas internas
	solicitudesGroup := protected.Group("/solicitudes")
	solicitudHandler := NewSolicitudHandler(deps.EntregasUC)
	solicitudesGroup.Post("/", solicitudHandler.Create)
	solicitudesGroup.Get("/", solicitudHandler.List)
	solicitudesGroup.Get("/:id", solicitudHandler.GetByID)

	// Solicitudes de compra
	compras := protected.Group("/compras")
	compraHandler := NewCompraHandler(deps.CompraUC)
	compras.Post("/", compraHandler.Create)
	compras.Get("/", compraHandler.List)
	compras.Put("/:id/estado", compraHandler.UpdateEstado)
	compras.Delete("/:id", compraHandler.Delete)

	// Proveedores
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Post("/", proveedorHandler.Create)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Put("/:id", proveedorHandler.Update)
	proveedores.Delete("/:id", proveedorHandler.Delete)

	// Tablas de referencia: un juego de rutas por tabla
	registrarCatalogo(protected, "categorias", deps.CategoriasUC)
	registrarCatalogo(protected, "marcas", deps.MarcasUC)
	registrarCatalogo(protected, "ubicaciones", deps.UbicacionesUC)
	registrarCatalogo(protected, "departamentos", deps.DepartamentosUC)

	// Solicitantes
	solicitantes := protected.Group("/solicitantes")
	solicitanteHandler := NewSolicitanteHandler(deps.SolicitantesUC)
	solicitantes.Get("/", solicitanteHandler.List)
	solicitantes.Post("/", solicitanteHandler.Add)
	solicitantes.Put("/:id/activo", solicitanteHandler.SetActivo)
}

func registrarCatalogo(router fiber.Router, nombre string, uc *usecase.CatalogoUseCase) {
	grupo := router.Group("/catalogos/" + nombre)
	handler := NewCatalogoHandler(uc)
	grupo.Get("/", handler.List)
	grupo.Post("/", handler.Add)
	grupo.Put("/:id", handler.Rename)
	grupo.Put("/:id/activo", handler.SetActivo)
}
