package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/crisrui7/hk-insurance-dividend/src/config"
	"github.com/crisrui7/hk-insurance-dividend/src/models"
	"github.com/crisrui7/hk-insurance-dividend/src/parsers"
	"github.com/spf13/cobra"
)

var (
	ingestSource       string
	ingestFile         string
	ingestAll          bool
	ingestDir          string
	ingestClearCompany bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse, validate and load one or all insurer documents",
	Long: `Ingest runs a raw insurer JSON document through the full pipeline:
adapter, validator, load engine. Re-running with the same document updates
rows in place instead of duplicating them.

Example:
  dividend-pipeline ingest --source ctf --file data/ctf.json
  dividend-pipeline ingest --all --dir data/`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestSource, "source", "", "insurer source (ctf, aia, prudential)")
	ingestCmd.Flags().StringVar(&ingestFile, "file", "", "path to the raw JSON document")
	ingestCmd.Flags().BoolVar(&ingestAll, "all", false, "ingest every known source from --dir")
	ingestCmd.Flags().StringVar(&ingestDir, "dir", "", "directory holding <source>.json documents (defaults to SOURCE_DIR)")
	ingestCmd.Flags().BoolVar(&ingestClearCompany, "clear-company", false, "clear the source's existing rows before loading")
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestAll {
		dir := ingestDir
		if dir == "" {
			dir = config.Cfg.SourceDir
		}
		for _, source := range parsers.Sources {
			if err := ingestOne(source, filepath.Join(dir, source+".json")); err != nil {
				return err
			}
		}
		return nil
	}

	if ingestSource == "" || ingestFile == "" {
		return fmt.Errorf("either --all or both --source and --file are required")
	}
	return ingestOne(ingestSource, ingestFile)
}

func ingestOne(source, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open source document %s: %w", path, err)
	}
	defer f.Close()

	if ingestClearCompany {
		if err := ingestionService.Clear(companyForSource(source)); err != nil {
			return err
		}
	}

	result, err := ingestionService.Ingest(source, f)
	if err != nil {
		return err
	}

	printIngestResult(result)
	return nil
}

// companyForSource maps a source name to the company value its adapter
// stamps, for targeted clearing.
func companyForSource(source string) string {
	switch source {
	case "ctf":
		return "周大福人寿"
	case "aia":
		return "友邦保险"
	case "prudential":
		return "保诚保险"
	}
	return ""
}

func printIngestResult(r *models.IngestResult) {
	fmt.Printf("%s: parsed %d, valid %d, invalid %d\n",
		r.Source, r.Parsed, r.Validation.Valid, r.Validation.Invalid)
	fmt.Printf("  inserted %d, updated %d, skipped %d\n",
		r.Load.Inserted, r.Load.Updated, r.Load.Skipped)
	for _, sample := range r.Validation.Samples {
		fmt.Printf("  invalid record %d (%s): %v\n",
			sample.RecordIndex, sample.ProductName, sample.Errors)
	}
}
