package tablefinder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kailas-cloud/tablefinder/internal/config"
	"github.com/kailas-cloud/tablefinder/internal/db"
	"github.com/kailas-cloud/tablefinder/internal/db/driver"
	dombatch "github.com/kailas-cloud/tablefinder/internal/domain/batch"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/query"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/result"
	"github.com/kailas-cloud/tablefinder/internal/ingest"
	restaurantrepo "github.com/kailas-cloud/tablefinder/internal/repository/restaurant"
	healthuc "github.com/kailas-cloud/tablefinder/internal/usecase/health"
	restaurantuc "github.com/kailas-cloud/tablefinder/internal/usecase/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/usecase/seed"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type restaurantUseCase interface {
	Search(ctx context.Context, raw query.Raw) (result.Page, error)
	List(ctx context.Context, page, limit int) (result.Page, error)
	Get(ctx context.Context, id int64) (domrest.Restaurant, error)
}

type loadUseCase interface {
	Load(ctx context.Context, src seed.RowSource) (dombatch.Summary, error)
}

// Client is the tablefinder SDK entry point.
type Client struct {
	store         db.Store
	restaurantSvc restaurantUseCase
	healthSvc     healthUseCase
	newLoader     func(batchSize int) loadUseCase
	obs           *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{zeroMatches: true}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("tablefinder: database required (use WithValkey, WithRedis or WithPostgres)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("tablefinder: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	s, err := driver.Open(config.DatabaseConfig{
		Driver:   cfg.driver,
		Addrs:    cfg.addrs,
		Password: cfg.password,
		DSN:      cfg.dsn,
		Table:    cfg.table,
	}, config.StorageConfig{KeyPrefix: cfg.keyPrefix})
	if err != nil {
		return nil, fmt.Errorf("tablefinder: %w", err)
	}
	return s, nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	repo := restaurantrepo.New(store)
	limits := query.Limits{DefaultLimit: cfg.defaultLimit, MaxLimit: cfg.maxLimit}

	return &Client{
		store: store,
		restaurantSvc: restaurantuc.New(repo, restaurantuc.Config{
			Timeout:            cfg.timeout,
			Search:             limits,
			Listing:            query.Limits{MaxLimit: cfg.maxLimit},
			IncludeZeroMatches: cfg.zeroMatches,
		}),
		healthSvc: healthuc.New(store, store),
		newLoader: func(batchSize int) loadUseCase {
			return seed.New(repo, seed.Config{BatchSize: batchSize})
		},
		obs: obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search ranks restaurants for q and returns the requested page.
func (c *Client) Search(ctx context.Context, q Query) (_ Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	p, err := c.restaurantSvc.Search(ctx, q.raw())
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	return pageFromDomain(&p), nil
}

// List pages through all restaurants in load order.
func (c *Client) List(ctx context.Context, page, limit int) (_ Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list", start, err) }()

	p, err := c.restaurantSvc.List(ctx, page, limit)
	if err != nil {
		return Page{}, fmt.Errorf("list: %w", err)
	}
	return pageFromDomain(&p), nil
}

// Get returns one restaurant; ErrNotFound when the id is unknown.
func (c *Client) Get(ctx context.Context, id int64) (_ Restaurant, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err) }()

	r, err := c.restaurantSvc.Get(ctx, id)
	if err != nil {
		return Restaurant{}, fmt.Errorf("get restaurant %d: %w", id, err)
	}
	return restaurantFromDomain(&r), nil
}

// Load reads a Zomato-format CSV from r and writes every valid row.
// batchSize <= 0 uses the default.
func (c *Client) Load(ctx context.Context, r io.Reader, batchSize int) (_ LoadResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("load", start, err) }()

	if err = driver.EnsureSchema(ctx, c.store); err != nil {
		return LoadResult{}, fmt.Errorf("load: %w", err)
	}

	rows, err := ingest.NewReader(r)
	if err != nil {
		return LoadResult{}, fmt.Errorf("load: %w", err)
	}
	summary, err := c.newLoader(batchSize).Load(ctx, rows)
	res := loadResultFromDomain(&summary)
	if err != nil {
		return res, fmt.Errorf("load: %w", err)
	}
	return res, nil
}
