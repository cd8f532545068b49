package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/ridwanfathin/supplier-invoice-service/internal/database"
	"github.com/ridwanfathin/supplier-invoice-service/internal/logging"
)

func main() {
	logger := logging.New("info", "pretty")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	// Get database URL
	dbURL := os.Getenv("POSTGRES_DB_URL")
	if dbURL == "" {
		logger.Fatal("POSTGRES_DB_URL environment variable not set")
	}

	if err := database.Migrate(dbURL); err != nil {
		logger.WithError(err).Fatal("Migration failed")
	}

	logger.Info("Migrations successfully applied")
}
