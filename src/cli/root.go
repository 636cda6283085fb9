// Package cli wires the operator commands around the pipeline: ingest,
// restructure, stats, clear.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/crisrui7/hk-insurance-dividend/src/config"
	"github.com/crisrui7/hk-insurance-dividend/src/database"
	"github.com/crisrui7/hk-insurance-dividend/src/loader"
	"github.com/crisrui7/hk-insurance-dividend/src/logger"
	"github.com/crisrui7/hk-insurance-dividend/src/parsers"
	"github.com/crisrui7/hk-insurance-dividend/src/services"
	"github.com/spf13/cobra"
)

var (
	ingestionService *services.IngestionService
	longLoader       *loader.Loader
)

var rootCmd = &cobra.Command{
	Use:   "dividend-pipeline",
	Short: "Normalize, load and restructure HK insurer dividend-fulfillment disclosures",
	Long: `dividend-pipeline ingests dividend-fulfillment disclosures published by
multiple insurers in mutually incompatible JSON schemas, normalizes them into
canonical long-form records, validates and idempotently loads them into
SQLite, and pivots the long-form table into a wide-form table with one
column pair per dividend category.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()
		logger.InitLogger(config.Cfg.LogLevel)

		// Store unavailability is the one user-fatal condition.
		if err := database.InitDB(config.Cfg.DatabasePath); err != nil {
			return fmt.Errorf("cannot continue without the relational store: %w", err)
		}

		longLoader = loader.NewLoader(database.DB)
		if err := longLoader.InitSchema(); err != nil {
			return err
		}
		ingestionService = services.NewIngestionService(longLoader, parsers.Options{
			DataYear:    config.Cfg.DataYear,
			LastUpdated: time.Now().Format("2006-01-02"),
		}, config.Cfg.BatchSize)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		database.Close()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
