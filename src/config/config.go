package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DatabasePath    string
	LogLevel        string
	DataYear        int    // reporting year stamped onto ingested records
	BatchSize       int    // records per load-engine commit
	SourceDir       string // directory holding <source>.json documents
	BackupLongTable bool   // rename the long table after a restructure
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	Cfg = &AppConfig{
		DatabasePath:    getEnv("DATABASE_PATH", "./insurance_data.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DataYear:        getEnvAsInt("DATA_YEAR", 2024),
		BatchSize:       getEnvAsInt("BATCH_SIZE", 100),
		SourceDir:       getEnv("SOURCE_DIR", "./data"),
		BackupLongTable: getEnvAsBool("BACKUP_LONG_TABLE", true),
	}

	log.Printf("Configuration loaded: LogLevel=%s, DBPath=%s, DataYear=%d, BatchSize=%d",
		Cfg.LogLevel, Cfg.DatabasePath, Cfg.DataYear, Cfg.BatchSize)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid boolean value for %s ('%s'), using default: %t", key, valueStr, fallback)
	return fallback
}
