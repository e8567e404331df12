// Package v1 provides HTTP API version 1.
package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharmastock/internal/core/security"
	"pharmastock/internal/domain/auth"
	"pharmastock/internal/domain/catalogs/medicine"
	"pharmastock/internal/domain/catalogs/supplier"
	"pharmastock/internal/domain/documents/purchase"
	"pharmastock/internal/domain/documents/sale"
	"pharmastock/internal/domain/reports"
	"pharmastock/internal/infrastructure/http/v1/handlers"
	"pharmastock/internal/infrastructure/http/v1/middleware"
	"pharmastock/pkg/logger"
)

// RouterConfig holds everything the HTTP layer needs.
type RouterConfig struct {
	// Pool is the database connection, nil when the in-memory store
	// backs the service (health checks adapt).
	Pool *pgxpool.Pool

	Logger *logger.Logger

	JWTValidator middleware.JWTValidator

	AuthService     *auth.Service
	SupplierService *supplier.Service
	MedicineService *medicine.Service
	PurchaseService *purchase.Service
	SaleService     *sale.Service
	ReportService   *reports.Service

	Version string
}

// NewRouter creates and configures the Gin router.
//
// Access rules are compiled CEL policies evaluated per route: catalog and
// report reads admit every authenticated role, stock mutations need a
// pharmacist or admin, and user management is admin only.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	evaluator, err := security.NewEvaluator()
	if err != nil {
		return nil, fmt.Errorf("create policy evaluator: %w", err)
	}
	anyRole := middleware.RequirePolicy(evaluator.MustCompile(security.ExprAnyRole))
	stockManagers := middleware.RequirePolicy(evaluator.MustCompile(security.ExprStockManagers))
	adminOnly := middleware.RequirePolicy(evaluator.MustCompile(security.ExprAdminOnly))

	baseHandler := handlers.NewBaseHandler()

	// Health endpoints, no auth
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	apiV1 := router.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
	apiV1.POST("/auth/login", authHandler.Login)

	protected := apiV1.Group("")
	protected.Use(middleware.Auth(cfg.JWTValidator))

	protected.GET("/auth/me", authHandler.Me)

	// Users: admin only
	users := protected.Group("/users", adminOnly)
	{
		users.POST("", authHandler.CreateUser)
		users.GET("", authHandler.ListUsers)
		users.GET("/:id", authHandler.GetUser)
		users.PUT("/:id", authHandler.UpdateUser)
		users.PUT("/:id/password", authHandler.ChangePassword)
		users.DELETE("/:id", authHandler.DeleteUser)
	}

	// Suppliers: read for everyone, writes for stock managers
	supplierHandler := handlers.NewSupplierHandler(baseHandler, cfg.SupplierService)
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", anyRole, supplierHandler.List)
		suppliers.GET("/:id", anyRole, supplierHandler.Get)
		suppliers.POST("", stockManagers, supplierHandler.Create)
		suppliers.PUT("/:id", stockManagers, supplierHandler.Update)
		suppliers.DELETE("/:id", adminOnly, supplierHandler.Delete)
	}

	// Medicines: read for everyone, writes for stock managers
	medicineHandler := handlers.NewMedicineHandler(baseHandler, cfg.MedicineService)
	medicines := protected.Group("/medicines")
	{
		medicines.GET("", anyRole, medicineHandler.List)
		medicines.GET("/:id", anyRole, medicineHandler.Get)
		medicines.POST("", stockManagers, medicineHandler.Create)
		medicines.PUT("/:id", stockManagers, medicineHandler.Update)
		medicines.DELETE("/:id", adminOnly, medicineHandler.Delete)
	}

	// Purchases: stock managers only
	purchaseHandler := handlers.NewPurchaseHandler(baseHandler, cfg.PurchaseService)
	purchases := protected.Group("/purchases", stockManagers)
	{
		purchases.POST("", purchaseHandler.Create)
		purchases.GET("", purchaseHandler.List)
	}

	// Sales: every authenticated role, cashiers included
	saleHandler := handlers.NewSaleHandler(baseHandler, cfg.SaleService)
	sales := protected.Group("/sales", anyRole)
	{
		sales.POST("", saleHandler.Create)
		sales.GET("", saleHandler.List)
	}

	// Reports: stock, expiry and sales views for everyone, the expiring
	// window and the purchase summary for stock managers
	reportsHandler := handlers.NewReportsHandler(baseHandler, cfg.ReportService)
	reportsGroup := protected.Group("/reports")
	{
		reportsGroup.GET("/stock", anyRole, reportsHandler.StockReport)
		reportsGroup.GET("/low-stock", anyRole, reportsHandler.LowStock)
		reportsGroup.GET("/expired", anyRole, reportsHandler.Expired)
		reportsGroup.GET("/expiring", stockManagers, reportsHandler.Expiring)
		reportsGroup.GET("/sales", anyRole, reportsHandler.SalesSummary)
		reportsGroup.GET("/purchases", stockManagers, reportsHandler.PurchasesSummary)
	}

	return router, nil
}
