package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/mkjeldsen/matchchain/internal/config"
	"github.com/mkjeldsen/matchchain/internal/infrastructure/repository/memory"
	"github.com/mkjeldsen/matchchain/internal/platform/cache"
	"github.com/mkjeldsen/matchchain/internal/platform/logging"
	"github.com/mkjeldsen/matchchain/internal/usecase"
)

// analyze runs the match pipeline over a JSON manifest of document sets
// and writes the full batch result as JSON, without needing the HTTP
// server or a database.
func main() {
	var (
		manifestPath = flag.String("manifest", "", "path to a JSON manifest: an array of {matchId, eventsPath, rosterPath, annotationsPath}")
		outPath      = flag.String("out", "", "output file for the batch result (default stdout)")
		workers      = flag.Int("workers", 0, "worker pool size (default ANALYZE_WORKERS)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(cfg, logger, *manifestPath, *outPath, *workers); err != nil {
		logger.Error("batch analyze failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger, manifestPath, outPath string, workers int) error {
	if manifestPath == "" {
		return crerr.New("-manifest is required")
	}

	items, err := readManifest(manifestPath)
	if err != nil {
		return err
	}

	var memo *cache.Store
	if cfg.CacheEnabled {
		memo = cache.NewStore(cfg.CacheTTL)
	}

	svc := usecase.NewAnalysisService(
		memory.NewAnalysisRepository(),
		memo,
		usecase.AnalyzerOptions{
			MaxChainGapS:        cfg.MaxChainGapS,
			ShotWindowS:         cfg.ShotWindowS,
			RetentionThresholdS: cfg.RetentionThresholdS,
			OutlierThresholdS:   cfg.OutlierThresholdS,
			IncludePenalties:    cfg.IncludePenalties,
			LastPassOnly:        cfg.LastPassOnly,
			SchemaVersion:       cfg.SchemaVersion,
		},
		logger,
	)

	if workers <= 0 {
		workers = cfg.AnalyzeWorkers
	}

	result, err := svc.AnalyzeBatch(context.Background(), items, workers)
	if err != nil {
		return err
	}

	logger.Info("batch analyze finished",
		"tasks", len(result.Tasks),
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)

	return writeResult(outPath, result)
}

func readManifest(path string) ([]usecase.BatchItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrap(err, "read manifest")
	}

	var items []usecase.BatchItem
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, crerr.Wrap(err, "parse manifest")
	}

	for i, item := range items {
		if item.EventsPath == "" {
			return nil, crerr.Newf("manifest item %d has no eventsPath", i)
		}
	}

	return items, nil
}

func writeResult(outPath string, result usecase.BatchResult) error {
	encoded, err := sonic.ConfigDefault.MarshalIndent(result, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode batch result")
	}
	encoded = append(encoded, '\n')

	if outPath == "" {
		_, err := os.Stdout.Write(encoded)
		return err
	}

	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return crerr.Wrap(err, "write batch result")
	}

	return nil
}
