package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Store drivers
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	GinMode      string

	// Storage configuration
	StoreDriver   string
	PostgresURL   string
	RunMigrations bool
	SeedData      bool

	// Logging configuration
	LogLevel  string
	LogFormat string

	// CORS configuration
	CORSAllowedOrigins []string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	loadDotEnv()

	config := &Config{
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 15)) * time.Second,
		GinMode:      getEnvString("GIN_MODE", "release"),

		StoreDriver:   strings.ToLower(getEnvString("STORE_DRIVER", StoreMemory)),
		PostgresURL:   os.Getenv("POSTGRES_DB_URL"),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
		SeedData:      getEnvBool("SEED_DATA", true),

		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogFormat: getEnvString("LOG_FORMAT", "json"),

		CORSAllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadDotEnv loads a .env file from the project root or the working directory
func loadDotEnv() {
	execPath, err := os.Executable()
	if err != nil {
		log.Warnf("Could not determine executable path: %v", err)
	}

	envPath := filepath.Join(filepath.Dir(filepath.Dir(filepath.Dir(execPath))), ".env")
	if err := godotenv.Load(envPath); err == nil {
		log.Infof("Loaded environment variables from %s", envPath)
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found. Using environment variables.")
		return
	}
	log.Info("Loaded environment variables from current directory .env file")
}

// validateConfig rejects unusable settings and warns about suspicious ones
func validateConfig(config *Config) error {
	switch config.StoreDriver {
	case StoreMemory:
		if config.PostgresURL != "" {
			log.Warn("POSTGRES_DB_URL is set but STORE_DRIVER is memory; the database will not be used.")
		}
	case StorePostgres:
		if config.PostgresURL == "" {
			return fmt.Errorf("STORE_DRIVER is postgres but POSTGRES_DB_URL is not set")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q: must be %q or %q", config.StoreDriver, StoreMemory, StorePostgres)
	}

	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", config.Port)
	}

	if config.LogFormat != "json" && config.LogFormat != "pretty" {
		log.Warnf("Unknown LOG_FORMAT %q, falling back to json", config.LogFormat)
		config.LogFormat = "json"
	}

	return nil
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warnf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvStringSlice gets a string slice from a comma-separated environment variable
func getEnvStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
