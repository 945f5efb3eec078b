package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	infrakafka "github.com/jhoicas/stockmaster-api/internal/infrastructure/kafka"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stockmaster-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockmaster-api/internal/interfaces/http"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
	"github.com/jhoicas/stockmaster-api/pkg/metrics"
	"github.com/jhoicas/stockmaster-api/pkg/telemetry"
)

// repositories agrupa las implementaciones elegidas por STORAGE_DRIVER.
type repositories struct {
	txRunner   inventory.TxRunner
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	categories repository.CategoryRepository
	partners   repository.PartnerRepository
	operations repository.OperationRepository
	ledger     repository.StockLedgerRepository
	stock      repository.StockRepository
	analytics  repository.AnalyticsRepository
	close      func()
}

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
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer repos.close()

	m := metrics.New("stockmaster")

	var publisher inventory.LedgerPublisher = inventory.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		kp := infrakafka.NewLedgerPublisher(cfg.Kafka, log)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar publicador Kafka")
			}
		}()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.LedgerTopic).Msg("publicación del kardex habilitada")
	}

	productUC := usecase.NewProductUseCase(repos.products, repos.categories)
	warehouseUC := usecase.NewWarehouseUseCase(repos.warehouses)
	categoryUC := usecase.NewCategoryUseCase(repos.categories)
	partnerUC := usecase.NewPartnerUseCase(repos.partners)
	operationUC := inventory.NewOperationUseCase(inventory.OperationDeps{
		TxRunner:   repos.txRunner,
		Operations: repos.operations,
		Products:   repos.products,
		Warehouses: repos.warehouses,
		Partners:   repos.partners,
		Publisher:  publisher,
		Documents:  infrapdf.NewMarotoPDFGenerator(),
		Metrics:    m,
		Logger:     log,
	})
	ledgerUC := inventory.NewLedgerQueryUseCase(repos.ledger, repos.stock, repos.products, repos.warehouses)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.analytics, repos.products, repos.categories)

	app := httpRouter.NewApp(cfg.App.Name)
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "StockMaster API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.StorageDriver})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		CategoryUC:  categoryUC,
		PartnerUC:   partnerUC,
		OperationUC: operationUC,
		LedgerUC:    ledgerUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.App.StorageDriver == config.StorageDriverMemory {
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repositories{
			txRunner:   store,
			products:   store.Products(),
			warehouses: store.Warehouses(),
			categories: store.Categories(),
			partners:   store.Partners(),
			operations: store.Operations(),
			ledger:     store.Ledger(),
			stock:      store.Stock(),
			analytics:  store.Analytics(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	return &repositories{
		txRunner:   postgres.NewTxRunner(pool),
		products:   postgres.NewProductRepository(pool),
		warehouses: postgres.NewWarehouseRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		partners:   postgres.NewPartnerRepository(pool),
		operations: postgres.NewOperationRepository(pool),
		ledger:     postgres.NewStockLedgerRepository(pool),
		stock:      postgres.NewStockRepository(pool),
		analytics:  postgres.NewAnalyticsRepository(pool),
		close:      pool.Close,
	}, nil
}
