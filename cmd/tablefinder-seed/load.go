package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tablefinder/internal/config"
	"github.com/kailas-cloud/tablefinder/internal/db/driver"
	dombatch "github.com/kailas-cloud/tablefinder/internal/domain/batch"
	"github.com/kailas-cloud/tablefinder/internal/ingest"
	logpkg "github.com/kailas-cloud/tablefinder/internal/logger"
	restaurantrepo "github.com/kailas-cloud/tablefinder/internal/repository/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/usecase/seed"
)

// maxReportedRejects caps the per-row lines printed after a load.
const maxReportedRejects = 20

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load restaurants from a CSV file",
	Long: `Load parses the CSV, validates coordinates and required fields, splits
Cuisines into a set and writes records in batches. Rows keep their file order
as the listing order. Invalid rows are reported and skipped.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().String("file", "", "path to the Zomato CSV export (required)")
	loadCmd.Flags().Int("batch-size", seed.DefaultBatchSize, "records per store write")
	loadCmd.Flags().Int("workers", seed.DefaultWorkers, "concurrent batch writes")
	loadCmd.Flags().Int("max-rejected", 0, "abort after this many invalid rows (0 = unlimited)")
	_ = loadCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	env, _ := cmd.Flags().GetString("env")
	file, _ := cmd.Flags().GetString("file")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	workers, _ := cmd.Flags().GetInt("workers")
	maxRejected, _ := cmd.Flags().GetInt("max-rejected")

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	f, err := os.Open(filepath.Clean(file))
	if err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	defer func() { _ = f.Close() }()

	store, err := driver.Open(cfg.Database, cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	if err := driver.EnsureSchema(ctx, store); err != nil {
		return err
	}

	logger.Info("Loading restaurants",
		zap.String("file", file),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Int("batch_size", batchSize),
		zap.Int("workers", workers),
	)

	start := time.Now()
	summary, err := load(ctx, f, restaurantrepo.New(store), seed.Config{
		BatchSize:   batchSize,
		Workers:     workers,
		MaxRejected: maxRejected,
	})
	printSummary(cmd.OutOrStdout(), summary)
	if err != nil {
		return err
	}

	logger.Info("Load finished",
		zap.Int("loaded", summary.Loaded),
		zap.Int("rejected", len(summary.Rejected)),
		zap.Int("batches", summary.Batches),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// load wires the CSV reader to the seed service.
func load(ctx context.Context, r io.Reader, w seed.RestaurantWriter, cfg seed.Config) (dombatch.Summary, error) {
	rows, err := ingest.NewReader(r)
	if err != nil {
		return dombatch.Summary{}, err
	}
	return seed.New(w, cfg).Load(ctx, rows)
}

func printSummary(out io.Writer, s dombatch.Summary) {
	_, _ = fmt.Fprintf(out, "rows: %d  loaded: %d  failed: %d  rejected: %d  batches: %d\n",
		s.Total(), s.Loaded, s.Failed, len(s.Rejected), s.Batches)
	for i, r := range s.Rejected {
		if i == maxReportedRejects {
			_, _ = fmt.Fprintf(out, "  ... %d more\n", len(s.Rejected)-maxReportedRejects)
			break
		}
		_, _ = fmt.Fprintf(out, "  line %d: %v\n", r.Line(), r.Err())
	}
}
