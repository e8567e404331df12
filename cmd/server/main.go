// Package main is the entry point for the pharmastock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pharmastock/internal/core/tx"
	"pharmastock/internal/domain/audit"
	"pharmastock/internal/domain/auth"
	"pharmastock/internal/domain/catalogs/medicine"
	"pharmastock/internal/domain/catalogs/supplier"
	"pharmastock/internal/domain/documents/purchase"
	"pharmastock/internal/domain/documents/sale"
	"pharmastock/internal/domain/reports"
	v1 "pharmastock/internal/infrastructure/http/v1"
	"pharmastock/internal/infrastructure/storage/memory"
	"pharmastock/internal/infrastructure/storage/postgres"
	"pharmastock/internal/infrastructure/storage/postgres/auth_repo"
	"pharmastock/internal/infrastructure/storage/postgres/catalog_repo"
	"pharmastock/internal/infrastructure/storage/postgres/document_repo"
	"pharmastock/pkg/logger"
)

const version = "1.0.0"

// deps bundles the storage-backed repositories and shared services.
type deps struct {
	pool *pgxpool.Pool // nil for memory storage

	txManager tx.Manager
	auditor   audit.Recorder

	medicines medicine.Repository
	suppliers supplier.Repository
	purchases purchase.Repository
	sales     sale.Repository
	users     auth.UserRepository
}

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting pharmastock server")

	d, cleanup, err := buildStorage(ctx, log)
	if err != nil {
		log.Fatalw("failed to initialize storage", "error", err)
	}
	defer cleanup()

	// --- Services ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))
	authService := auth.NewService(d.users, d.txManager, jwtService, d.auditor, auth.DefaultServiceConfig())

	supplierService := supplier.NewService(d.suppliers, d.txManager)
	medicineService := medicine.NewService(d.medicines, d.suppliers, d.txManager, d.auditor)
	purchaseService := purchase.NewService(d.purchases, d.medicines, d.suppliers, d.txManager, d.auditor)
	saleService := sale.NewService(d.sales, d.medicines, d.txManager, d.auditor)
	reportService := reports.NewService(d.medicines, d.sales, d.purchases)

	// Bootstrap admin so a fresh installation is usable.
	if email := getEnv("ADMIN_EMAIL", ""); email != "" {
		err := authService.EnsureAdmin(ctx,
			getEnv("ADMIN_NAME", "Administrator"),
			email,
			mustEnv("ADMIN_PASSWORD"),
		)
		if err != nil {
			log.Fatalw("failed to ensure admin user", "error", err)
		}
	}

	// --- Router ---
	router, err := v1.NewRouter(v1.RouterConfig{
		Pool:            d.pool,
		Logger:          log,
		JWTValidator:    jwtService,
		AuthService:     authService,
		SupplierService: supplierService,
		MedicineService: medicineService,
		PurchaseService: purchaseService,
		SaleService:     saleService,
		ReportService:   reportService,
		Version:         version,
	})
	if err != nil {
		log.Fatalw("failed to build router", "error", err)
	}

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// buildStorage wires repositories against PostgreSQL, or against the
// in-memory store when STORAGE=memory.
func buildStorage(ctx context.Context, log *logger.Logger) (*deps, func(), error) {
	if getEnv("STORAGE", "postgres") == "memory" {
		log.Warn("running on in-memory storage, data is not persisted")
		store := memory.NewStore()
		return &deps{
			txManager: memory.NewTxManager(store),
			auditor:   memory.NewAuditRecorder(store),
			medicines: memory.NewMedicineRepo(store),
			suppliers: memory.NewSupplierRepo(store),
			purchases: memory.NewPurchaseRepo(store),
			sales:     memory.NewSaleRepo(store),
			users:     memory.NewUserRepo(store),
		}, func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)
	auditor, err := postgres.NewAuditRecorder(txManager)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("create audit recorder: %w", err)
	}

	return &deps{
		pool:      pool.Pool,
		txManager: txManager,
		auditor:   auditor,
		medicines: catalog_repo.NewMedicineRepo(txManager),
		suppliers: catalog_repo.NewSupplierRepo(txManager),
		purchases: document_repo.NewPurchaseRepo(txManager),
		sales:     document_repo.NewSaleRepo(txManager),
		users:     auth_repo.NewUserRepo(txManager),
	}, pool.Close, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
