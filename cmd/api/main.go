package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/usm-ti/almacen-api/internal/application/auth"
	"github.com/usm-ti/almacen-api/internal/application/inventory"
	"github.com/usm-ti/almacen-api/internal/application/notify"
	"github.com/usm-ti/almacen-api/internal/application/solicitudes"
	"github.com/usm-ti/almacen-api/internal/application/usecase"
	"github.com/usm-ti/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/usm-ti/almacen-api/internal/interfaces/http"
	"github.com/usm-ti/almacen-api/pkg/config"
	"github.com/usm-ti/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool, cfg.Admin); err != nil {
		log.Fatal().Err(err).Msg("esquema inicial")
	}

	// Repositorios sobre el pool (las transacciones crean los suyos propios)
	productoRepo := postgres.NewProductoRepository(pool)
	invRepo := postgres.NewInventarioRepository(pool)
	movRepo := postgres.NewMovimientoRepository(pool)
	solicitudRepo := postgres.NewSolicitudRepository(pool)
	compraRepo := postgres.NewCompraRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	solicitanteRepo := postgres.NewSolicitanteRepository(pool)
	categoriasRepo := postgres.NewCatalogoRepository(pool, "categorias", true)
	marcasRepo := postgres.NewCatalogoRepository(pool, "marcas", true)
	ubicacionesRepo := postgres.NewCatalogoRepository(pool, "ubicaciones", true)
	departamentosRepo := postgres.NewCatalogoRepository(pool, "departamentos", true)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	libro := inventory.NewLibroUseCase(movRepo, productoRepo, usuarioRepo)
	inventarioUC := inventory.NewInventarioUseCase(invRepo, productoRepo, libro, txRunner, log)
	productoUC := usecase.NewProductoUseCase(productoRepo, invRepo, marcasRepo, categoriasRepo, ubicacionesRepo, libro, txRunner)
	entregasUC := solicitudes.NewEntregasUseCase(solicitudRepo, departamentosRepo, solicitanteRepo, libro, txRunner)
	compraUC := usecase.NewCompraUseCase(compraRepo)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo, categoriasRepo)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Notificador periódico de stock bajo
	notifier := notify.NewNotifier(invRepo, time.Duration(cfg.Alertas.IntervaloMinutos)*time.Minute, log)
	notifier.Start(ctx)
	defer notifier.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProductoUC:      productoUC,
		InventarioUC:    inventarioUC,
		Libro:           libro,
		EntregasUC:      entregasUC,
		CompraUC:        compraUC,
		ProveedorUC:     proveedorUC,
		CategoriasUC:    usecase.NewCatalogoUseCase(categoriasRepo),
		MarcasUC:        usecase.NewCatalogoUseCase(marcasRepo),
		UbicacionesUC:   usecase.NewCatalogoUseCase(ubicacionesRepo),
		DepartamentosUC: usecase.NewCatalogoUseCase(departamentosRepo),
		SolicitantesUC:  usecase.NewSolicitanteUseCase(solicitanteRepo, departamentosRepo),
		Notifier:        notifier,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
