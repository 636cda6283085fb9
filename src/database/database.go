package database

import (
	"database/sql"
	"fmt"

	"github.com/crisrui7/hk-insurance-dividend/src/logger"
	_ "modernc.org/sqlite"
)

// DB is the process-wide store handle. Total unavailability of the store is
// the one user-fatal condition in the pipeline, so InitDB returns an error
// for the caller to abort on instead of proceeding with partial writes.
var DB *sql.DB

func InitDB(databasePath string) error {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return fmt.Errorf("failed to open database at %s: %w", databasePath, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database at %s: %w", databasePath, err)
	}

	DB = db
	logger.L.Info("Database opened", "databasePath", databasePath)
	return nil
}

func Close() {
	if DB != nil {
		if err := DB.Close(); err != nil {
			logger.L.Error("failed to close database", "error", err)
		}
	}
}
