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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	appanalytics "github.com/jhoicas/Manufactura-api/internal/application/analytics"
	"github.com/jhoicas/Manufactura-api/internal/application/auth"
	"github.com/jhoicas/Manufactura-api/internal/application/inventory"
	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/application/production"
	"github.com/jhoicas/Manufactura-api/internal/application/purchasing"
	"github.com/jhoicas/Manufactura-api/internal/application/sales"
	"github.com/jhoicas/Manufactura-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Manufactura-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Manufactura-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Manufactura-api/internal/infrastructure/redis"
	infraxlsx "github.com/jhoicas/Manufactura-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Manufactura-api/internal/interfaces/http"
	"github.com/jhoicas/Manufactura-api/pkg/config"
	"github.com/jhoicas/Manufactura-api/pkg/logger"
)

const notificationTTL = 30 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	// Notificaciones opcionales: sin REDIS_URL la interfaz queda en nil.
	var notifications ports.NotificationStore
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		notifications = infraredis.NewNotificationStore(rdb, notificationTTL)
	} else {
		log.Warn().Msg("REDIS_URL vacío: notificaciones deshabilitadas")
	}

	txRunner := postgres.NewTxRunner(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	materialRepo := postgres.NewRawMaterialRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	costRepo := postgres.NewCostRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	act := activity.NewLogger(log.Component("activity"))

	costUC := production.NewCostUseCase(
		txRunner, batchRepo, costRepo, materialRepo, purchaseRepo, productRepo,
		infrapdf.NewCostSheetGenerator(), act,
	)
	batchUC := production.NewBatchUseCase(txRunner, batchRepo, productRepo, act, production.Options{
		StrictMaterialStock: cfg.Manufacturing.StrictMaterialStock,
	})
	authUC := auth.NewAuthUseCase(userRepo, activityRepo, act, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Manufactura API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(userRepo),
		ProductUC:     usecase.NewProductUseCase(productRepo, activityRepo, act),
		MaterialUC:    usecase.NewRawMaterialUseCase(materialRepo, activityRepo, act),
		InventoryUC:   inventory.NewUseCase(txRunner, inventoryRepo, adjustmentRepo, act),
		Replenishment: inventory.NewReplenishmentUseCase(materialRepo, purchaseRepo),
		TransferUC:    inventory.NewTransferUseCase(txRunner, transferRepo, productRepo, notifications, act, log.Component("transfers")),
		PurchaseUC:    purchasing.NewUseCase(txRunner, purchaseRepo, act),
		BatchUC:       batchUC,
		CostUC:        costUC,
		SaleUC:        sales.NewUseCase(txRunner, saleRepo, productRepo, act),
		DashboardUC:   appanalytics.NewDashboardUseCase(reportRepo),
		ReportUC:      appanalytics.NewReportUseCase(reportRepo, batchRepo, productRepo, costUC, infraxlsx.NewReportWriter()),
		ActivityUC:    activity.NewUseCase(activityRepo),
		JWTSecret:     cfg.JWT.Secret,
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
