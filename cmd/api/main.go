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

	"github.com/jhoicas/sucursales-api/internal/application/auth"
	"github.com/jhoicas/sucursales-api/internal/application/inventory"
	"github.com/jhoicas/sucursales-api/internal/application/ports"
	"github.com/jhoicas/sucursales-api/internal/application/sales"
	"github.com/jhoicas/sucursales-api/internal/application/transfer"
	"github.com/jhoicas/sucursales-api/internal/application/usecase"
	"github.com/jhoicas/sucursales-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/sucursales-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sucursales-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/sucursales-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/sucursales-api/internal/interfaces/http"
	"github.com/jhoicas/sucursales-api/pkg/config"
	"github.com/jhoicas/sucursales-api/pkg/logger"
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

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	// Carritos: Redis si hay REDIS_URL, si no memoria del proceso.
	var carts ports.CartStore = memory.NewCartStore()
	if cfg.Redis.URL != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		carts = infraredis.NewCartStore(rdb, time.Duration(cfg.Redis.CartTTLHours)*time.Hour)
	} else {
		log.Warn().Msg("REDIS_URL vacío: carritos en memoria, se pierden al reiniciar")
	}

	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	processor := inventory.NewMovementProcessor(txRunner, branchRepo, log)
	balances := inventory.NewBalanceQuery(txRunner, stockRepo, movementRepo, productRepo, branchRepo)

	// PDF: remito de transferencia
	remito := infrapdf.NewRemitoGenerator(cfg.App.Name)
	coordinator := transfer.NewCoordinator(
		txRunner, processor, branchRepo, productRepo, transferRepo, carts, remito, log,
	)
	cartSvc := sales.NewCartService(carts, productRepo)
	orderSvc := sales.NewOrderService(txRunner, processor, balances, branchRepo, orderRepo, carts, log)

	authUC := auth.NewAuthUseCase(userRepo, branchRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Sucursales API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    usecase.NewUserUseCase(userRepo),
		BranchUC:  usecase.NewBranchUseCase(branchRepo),
		ProductUC: usecase.NewProductUseCase(txRunner, productRepo),
		Processor: processor,
		Balances:  balances,
		Transfers: coordinator,
		Carts:     cartSvc,
		Orders:    orderSvc,
		JWTSecret: cfg.JWT.Secret,
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
