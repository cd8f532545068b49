package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/ridwanfathin/supplier-invoice-service/docs" // registers the OpenAPI document
	"github.com/ridwanfathin/supplier-invoice-service/internal/config"
	"github.com/ridwanfathin/supplier-invoice-service/internal/database"
	"github.com/ridwanfathin/supplier-invoice-service/internal/handler"
	"github.com/ridwanfathin/supplier-invoice-service/internal/logging"
	"github.com/ridwanfathin/supplier-invoice-service/internal/metrics"
	"github.com/ridwanfathin/supplier-invoice-service/internal/repository"
	"github.com/ridwanfathin/supplier-invoice-service/internal/server"
	"github.com/ridwanfathin/supplier-invoice-service/internal/service"
	"github.com/sirupsen/logrus"
)

// @title Supplier Invoice API
// @version 1.0
// @description Bookkeeping API for suppliers, catalog items and invoices.
// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	// Initialize store
	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize store")
	}
	defer closeStore()

	if cfg.SeedData {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := repository.Seed(ctx, store)
		cancel()
		if err != nil {
			logger.WithError(err).Fatal("Failed to seed store")
		}
		logger.Info("Sample data loaded")
	}

	m := metrics.New()

	// Create handlers
	supplierHandler := handler.NewSupplierHandler(service.NewSupplierService(store), m)
	itemHandler := handler.NewItemHandler(service.NewItemService(store), m)
	invoiceHandler := handler.NewInvoiceHandler(service.NewInvoiceService(store), m)
	reportHandler := handler.NewReportHandler(service.NewReportService(store))

	// Create and configure server
	appServer := server.NewServer(cfg, logger, m, supplierHandler, itemHandler, invoiceHandler, reportHandler)

	// Start server (blocking call)
	if err := appServer.Start(); err != nil {
		logger.WithError(err).Fatal("Server error")
	}

	logger.Info("Server shutdown complete")
}

// openStore builds the store selected by STORE_DRIVER. The returned func
// releases its resources.
func openStore(cfg *config.Config, logger *logrus.Logger) (repository.Store, func(), error) {
	if cfg.StoreDriver != config.StorePostgres {
		logger.Info("Using in-memory store")
		return repository.NewMemoryStore(), func() {}, nil
	}

	if cfg.RunMigrations {
		logger.Info("Applying database migrations")
		if err := database.Migrate(cfg.PostgresURL); err != nil {
			return nil, nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Using PostgreSQL store")
	return repository.NewPostgresStore(db), db.Close, nil
}
