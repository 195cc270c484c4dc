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

	"github.com/gudangmaju/motorparts-api/internal/application/analytics"
	"github.com/gudangmaju/motorparts-api/internal/application/auth"
	"github.com/gudangmaju/motorparts-api/internal/application/inventory"
	"github.com/gudangmaju/motorparts-api/internal/application/ledger"
	"github.com/gudangmaju/motorparts-api/internal/application/report"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
	"github.com/gudangmaju/motorparts-api/internal/infrastructure/mongodb"
	"github.com/gudangmaju/motorparts-api/internal/infrastructure/notify"
	infrapdf "github.com/gudangmaju/motorparts-api/internal/infrastructure/pdf"
	"github.com/gudangmaju/motorparts-api/internal/infrastructure/postgres"
	httpRouter "github.com/gudangmaju/motorparts-api/internal/interfaces/http"
	"github.com/gudangmaju/motorparts-api/pkg/config"
	"github.com/gudangmaju/motorparts-api/pkg/logger"
)

// repositories agrupa los puertos de persistencia que construye cada backend.
type repositories struct {
	parts     repository.PartRepository
	ledger    repository.TransactionRepository
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	txRunner  inventory.TxRunner
	close     func(context.Context)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := buildRepositories(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("conexión al almacenamiento")
	}
	defer repos.close(ctx)

	notifier := notify.NewWebhookNotifier(cfg.Notify, log.Component("notify"))

	stockUC := inventory.NewStockUseCase(repos.txRunner, repos.parts, notifier)
	ledgerUC := ledger.NewUseCase(repos.ledger, infrapdf.NewReceiptGenerator())
	reportUC := report.NewUseCase(repos.analytics, infrapdf.NewReportGenerator())
	dashboardUC := analytics.NewDashboardUseCase(repos.analytics)
	authUC := auth.NewUseCase(repos.users, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:     stockUC,
		LedgerUC:    ledgerUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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

// buildRepositories arma el conjunto de adaptadores según STORAGE_DRIVER.
func buildRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageMongoDB:
		client, err := mongodb.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return &repositories{
			parts:     mongodb.NewPartRepository(client),
			ledger:    mongodb.NewTransactionRepository(client),
			users:     mongodb.NewUserRepository(client),
			analytics: mongodb.NewAnalyticsRepository(client),
			txRunner:  mongodb.NewTxRunner(client),
			close: func(ctx context.Context) {
				_ = client.Close(ctx)
			},
		}, nil
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &repositories{
			parts:     postgres.NewPartRepository(pool),
			ledger:    postgres.NewTransactionRepository(pool),
			users:     postgres.NewUserRepository(pool),
			analytics: postgres.NewAnalyticsRepository(pool),
			txRunner:  postgres.NewTxRunner(pool),
			close: func(context.Context) {
				pool.Close()
			},
		}, nil
	}
}
