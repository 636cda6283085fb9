package services

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/crisrui7/hk-insurance-dividend/src/loader"
	"github.com/crisrui7/hk-insurance-dividend/src/logger"
	"github.com/crisrui7/hk-insurance-dividend/src/models"
	"github.com/crisrui7/hk-insurance-dividend/src/parsers"
	"github.com/crisrui7/hk-insurance-dividend/src/validation"
	"github.com/patrickmn/go-cache"
)

var (
	ErrParsingFailed = errors.New("parsing failed")
	ErrLoadingFailed = errors.New("loading failed")
)

const (
	ckStatistics = "agg_statistics"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

// IngestionService orchestrates one source document through the pipeline:
// parse, validate, filter, upsert.
type IngestionService struct {
	ldr        *loader.Loader
	opts       parsers.Options
	batchSize  int
	statsCache *cache.Cache
}

func NewIngestionService(ldr *loader.Loader, opts parsers.Options, batchSize int) *IngestionService {
	return &IngestionService{
		ldr:        ldr,
		opts:       opts,
		batchSize:  batchSize,
		statsCache: cache.New(DefaultCacheExpiration, CacheCleanupInterval),
	}
}

// Ingest runs one insurer document end to end. Invalid records are excluded
// from loading; the validation summary travels back to the operator either
// way.
func (s *IngestionService) Ingest(source string, document io.Reader) (*models.IngestResult, error) {
	overallStartTime := time.Now()
	logger.L.Info("Ingest START", "source", source)

	parser, err := parsers.GetParser(source, s.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	records, err := parser.Parse(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	batch := validation.ValidateBatch(records)
	if batch.Invalid > 0 {
		logger.L.Warn("Validation failures in batch",
			"source", source, "invalid", batch.Invalid, "valid", batch.Valid)
		for _, sample := range batch.Samples {
			logger.L.Warn("Invalid record",
				"index", sample.RecordIndex, "productName", sample.ProductName,
				"errors", sample.Errors)
		}
	}

	loadResult, err := s.ldr.UpsertBatch(validation.Filter(records), s.batchSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadingFailed, err)
	}

	s.statsCache.Delete(ckStatistics)

	logger.L.Info("Ingest END", "source", source,
		"parsed", len(records), "duration", time.Since(overallStartTime))
	return &models.IngestResult{
		Source:     source,
		Parsed:     len(records),
		Validation: batch,
		Load:       loadResult,
	}, nil
}

// Statistics returns the long-table statistics, memoized for fifteen
// minutes. Ingest and Clear invalidate the cache.
func (s *IngestionService) Statistics() (*models.Statistics, error) {
	if cached, found := s.statsCache.Get(ckStatistics); found {
		return cached.(*models.Statistics), nil
	}

	stats, err := s.ldr.Statistics()
	if err != nil {
		return nil, err
	}
	s.statsCache.Set(ckStatistics, stats, cache.DefaultExpiration)
	return stats, nil
}

// Clear removes long-form rows (all, or one company's) and invalidates the
// statistics cache.
func (s *IngestionService) Clear(company string) error {
	if err := s.ldr.Clear(company); err != nil {
		return err
	}
	s.statsCache.Delete(ckStatistics)
	return nil
}
