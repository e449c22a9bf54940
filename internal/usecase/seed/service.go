// Package seed bulk-loads restaurants from a row source into the store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/tablefinder/internal/domain/batch"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/ingest"
	"github.com/kailas-cloud/tablefinder/internal/logger"
)

// Defaults for Config.
const (
	DefaultBatchSize = 500
	DefaultWorkers   = 4
)

// Config tunes a load.
type Config struct {
	BatchSize int
	Workers   int
	// MaxRejected aborts the load once more rows than this are rejected; 0 means unlimited.
	MaxRejected int
}

// ErrTooManyRejected is returned when rejected rows exceed Config.MaxRejected.
var ErrTooManyRejected = errors.New("too many rejected rows")

// Service loads rows in batches with per-row error reporting.
type Service struct {
	writer RestaurantWriter
	cfg    Config
}

// New creates a seed service.
func New(writer RestaurantWriter, cfg Config) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Service{writer: writer, cfg: cfg}
}

// Load reads src to the end and writes every valid row. Rows keep their source
// order as store-native order; rejected rows are skipped without leaving gaps.
// Rows count as loaded only once their batch is written. A write failure
// stops the load and is returned alongside the partial summary.
func (s *Service) Load(ctx context.Context, src RowSource) (dombatch.Summary, error) {
	log := logger.FromContext(ctx)

	var (
		mu      sync.Mutex
		summary dombatch.Summary
	)
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(s.cfg.Workers)

	position := 0
	batch := make([]ingest.Row, 0, s.cfg.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		rows := batch
		start := position
		position += len(rows)
		mu.Lock()
		summary.Batches++
		mu.Unlock()
		batch = make([]ingest.Row, 0, s.cfg.BatchSize)

		p.Go(func(ctx context.Context) error {
			err := s.write(ctx, start, rows)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed += len(rows)
				return err
			}
			for _, row := range rows {
				summary.Add(dombatch.NewOK(row.Line, row.Restaurant.ID))
			}
			return nil
		})
	}

	var readErr error
	for {
		if err := ctx.Err(); err != nil {
			readErr = err
			break
		}
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var rowErr *ingest.RowError
		if errors.As(err, &rowErr) {
			log.Debug("row rejected", zap.Int("line", rowErr.Line), zap.Error(rowErr.Err))
			mu.Lock()
			summary.Add(dombatch.NewRejected(rowErr.Line, 0, rowErr.Err))
			rejected := len(summary.Rejected)
			mu.Unlock()
			if s.cfg.MaxRejected > 0 && rejected > s.cfg.MaxRejected {
				readErr = fmt.Errorf("%w: %d", ErrTooManyRejected, rejected)
				break
			}
			continue
		}
		if err != nil {
			readErr = fmt.Errorf("read rows: %w", err)
			break
		}

		batch = append(batch, row)
		if len(batch) == s.cfg.BatchSize {
			flush()
		}
	}
	if readErr == nil {
		flush()
	}

	writeErr := p.Wait()
	if err := errors.Join(readErr, writeErr); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *Service) write(ctx context.Context, start int, rows []ingest.Row) error {
	rs := make([]domrest.Restaurant, len(rows))
	for i := range rows {
		rs[i] = rows[i].Restaurant
	}
	if err := s.writer.Put(ctx, start, rs); err != nil {
		return fmt.Errorf("batch at lines %d-%d: %w", rows[0].Line, rows[len(rows)-1].Line, err)
	}
	logger.FromContext(ctx).Debug("batch written",
		zap.Int("start", start),
		zap.Int("size", len(rs)),
	)
	return nil
}
