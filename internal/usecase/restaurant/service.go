// Package restaurant runs restaurant searches, listings and lookups.
package restaurant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tablefinder/internal/domain"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/pipeline"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/query"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/result"
	"github.com/kailas-cloud/tablefinder/internal/logger"
	"github.com/kailas-cloud/tablefinder/internal/metrics"
)

// DefaultTimeout bounds one request's store work when Config.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Config tunes the service.
type Config struct {
	Timeout            time.Duration
	Search             query.Limits
	Listing            query.Limits
	IncludeZeroMatches bool
}

// Service executes paginated restaurant queries as two independent store
// passes (count and page) derived from one shared pipeline prefix.
type Service struct {
	repo    Repository
	search  *query.Normalizer
	listing *query.Normalizer
	builder *pipeline.Builder
	timeout time.Duration
}

// New creates a restaurant service.
func New(repo Repository, cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Listing.DefaultLimit <= 0 {
		cfg.Listing.DefaultLimit = query.DefaultListLimit
	}
	return &Service{
		repo:    repo,
		search:  query.NewNormalizer(cfg.Search),
		listing: query.NewNormalizer(cfg.Listing),
		builder: pipeline.NewBuilder(cfg.IncludeZeroMatches),
		timeout: cfg.Timeout,
	}
}

// Search ranks restaurants near a point and/or by cuisine overlap.
// Zero matches is a valid empty page, not an error.
func (s *Service) Search(ctx context.Context, raw query.Raw) (result.Page, error) {
	start := time.Now()
	d, err := s.search.Normalize(raw)
	if err != nil {
		observe(metrics.OpSearch, start, err)
		return result.Page{}, err
	}
	page, err := s.execute(ctx, metrics.OpSearch, d)
	observe(metrics.OpSearch, start, err)
	return page, err
}

// List returns one page of every restaurant in store-native order.
func (s *Service) List(ctx context.Context, page, limit int) (result.Page, error) {
	start := time.Now()
	d, err := s.listing.Listing(page, limit)
	if err != nil {
		observe(metrics.OpList, start, err)
		return result.Page{}, err
	}
	res, err := s.execute(ctx, metrics.OpList, d)
	observe(metrics.OpList, start, err)
	return res, err
}

// Get returns one restaurant by id.
func (s *Service) Get(ctx context.Context, id int64) (domrest.Restaurant, error) {
	start := time.Now()
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.repo.Get(tctx, id)
	if err != nil {
		err = classify(ctx, tctx, err)
		if domain.KindOf(err) != domain.KindNotFound {
			logger.FromContext(ctx).Warn("Restaurant lookup failed", zap.Int64("id", id), zap.Error(err))
		}
	}
	observe(metrics.OpGet, start, err)
	return r, err
}

// execute runs the count and page passes concurrently under one deadline.
// The first failure cancels the other pass; partial results are never returned.
func (s *Service) execute(ctx context.Context, op string, d query.Descriptor) (result.Page, error) {
	countP, pageP := s.builder.Build(d)

	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		total int
		items []result.Candidate
	)
	p := pool.New().WithContext(tctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		defer observePass(metrics.PassCount, time.Now())
		n, err := s.repo.Count(ctx, countP)
		if err != nil {
			return fmt.Errorf("count pass: %w", err)
		}
		total = n
		return nil
	})
	p.Go(func(ctx context.Context) error {
		defer observePass(metrics.PassPage, time.Now())
		cands, err := s.repo.Run(ctx, pageP)
		if err != nil {
			return fmt.Errorf("page pass: %w", err)
		}
		items = cands
		return nil
	})

	if err := p.Wait(); err != nil {
		err = classify(ctx, tctx, err)
		s.logFailure(ctx, op, &d, countP, pageP, err)
		return result.Page{}, err
	}

	metrics.SearchResultsTotal.WithLabelValues(op).Observe(float64(total))

	page := result.NewPage(total, d.Limit(), items)
	page.Number = d.Page()
	return page, nil
}

// classify maps an execution error to a domain kind. parent is the caller's
// context and tctx the per-request deadline derived from it.
func classify(parent, tctx context.Context, err error) error {
	if domain.KindOf(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(tctx.Err(), context.DeadlineExceeded):
		return domain.Wrap(domain.KindStoreTimeout, err, "store did not answer in time")
	case errors.Is(err, context.Canceled), parent.Err() != nil:
		return domain.Wrap(domain.KindCanceled, err, "request canceled")
	default:
		return domain.Wrap(domain.KindStoreUnavailable, err, "store query failed")
	}
}

func (s *Service) logFailure(
	ctx context.Context, op string, d *query.Descriptor, countP, pageP pipeline.Pipeline, err error,
) {
	l := logger.FromContext(ctx)
	switch domain.KindOf(err) {
	case domain.KindPipeline, domain.KindInvalidGeometry:
		l.Error("Malformed search pipeline",
			zap.String("operation", op),
			zap.Object("query", descriptorFields{d}),
			zap.Stringer("count_pipeline", countP),
			zap.Stringer("page_pipeline", pageP),
			zap.Error(err),
		)
	case domain.KindCanceled:
		l.Debug("Search canceled", zap.String("operation", op), zap.Error(err))
	default:
		l.Warn("Search store failure",
			zap.String("operation", op),
			zap.Object("query", descriptorFields{d}),
			zap.Error(err),
		)
	}
}

func observe(op string, start time.Time, err error) {
	status := metrics.StatusOK
	if err != nil {
		status = string(domain.KindOf(err))
		if status == "" {
			status = "unknown"
		}
	}
	metrics.SearchRequestsTotal.WithLabelValues(op, status).Inc()
	metrics.SearchDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func observePass(pass string, start time.Time) {
	metrics.StorePassDuration.WithLabelValues(pass).Observe(time.Since(start).Seconds())
}
