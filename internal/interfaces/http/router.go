package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gudangmaju/motorparts-api/internal/application/analytics"
	"github.com/gudangmaju/motorparts-api/internal/application/auth"
	"github.com/gudangmaju/motorparts-api/internal/application/inventory"
	"github.com/gudangmaju/motorparts-api/internal/application/ledger"
	"github.com/gudangmaju/motorparts-api/internal/application/report"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC     *inventory.StockUseCase
	LedgerUC    *ledger.UseCase
	ReportUC    *report.UseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todas las rutas salvo /api/auth
// requieren Bearer Token; las mutaciones además exigen rol admin o kepala
// (manajer es solo lectura).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	canWrite := RequireRole(entity.RoleAdmin, entity.RoleKepala)

	// Parts (protegido)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.StockUC)
	parts.Get("/", partHandler.List)
	parts.Get("/locations", partHandler.ListLocations)
	parts.Get("/low-stock", partHandler.ListLowStock)
	parts.Get("/barcode/:code", partHandler.GetByBarcode)
	parts.Get("/:id", partHandler.GetByID)
	parts.Post("/", canWrite, partHandler.Create)
	parts.Put("/:id", canWrite, partHandler.Update)
	parts.Delete("/:id", canWrite, partHandler.Delete)

	// Transactions (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.StockUC, deps.LedgerUC)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Get("/:id/receipt", transactionHandler.GetReceipt)
	transactions.Post("/", canWrite, transactionHandler.Create)

	// Reports (protegido, solo lectura)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/", reportHandler.Get)
	reports.Get("/pdf", reportHandler.GetPDF)

	// Dashboard (protegido, solo lectura)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
