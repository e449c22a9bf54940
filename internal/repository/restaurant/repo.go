// Package restaurant evaluates search pipelines against a db.Store.
package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/tablefinder/internal/db"
	"github.com/kailas-cloud/tablefinder/internal/domain"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/pipeline"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/result"
)

// store is the consumer interface for restaurants (ISP).
type store interface {
	GeoSearch(ctx context.Context, q *db.GeoQuery) ([]db.GeoHit, error)
	ListIDs(ctx context.Context, offset, limit int) ([]string, error)
	CountAll(ctx context.Context) (int, error)
	Records(ctx context.Context, ids []string) ([]map[string]string, error)
	PutRecords(ctx context.Context, records []db.Record) error
}

// Repo implements usecase/restaurant.Repository.
//
// A leading GeoFilter runs on the store's geospatial index; the remaining
// stages run in-process over the hydrated candidates. When no remaining stage
// reads record fields, Skip/Limit are pushed down and only the page is
// hydrated.
type Repo struct {
	store store
}

// New creates a restaurant repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// source is the ordered candidate stream before in-process stages run.
type source struct {
	ids       []string
	distances []float64 // nil without a GeoFilter
}

func (s *source) window(offset, limit int) source {
	lo, hi := bounds(len(s.ids), offset, limit)
	out := source{ids: s.ids[lo:hi]}
	if s.distances != nil {
		out.distances = s.distances[lo:hi]
	}
	return out
}

// Run evaluates p and returns the resulting candidates in pipeline order.
func (r *Repo) Run(ctx context.Context, p pipeline.Pipeline) ([]result.Candidate, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rest := p.Rest()

	if geo, ok := p.Source(); ok {
		src, err := r.geoSource(ctx, &geo)
		if err != nil {
			return nil, err
		}
		if offset, limit, ok := rest.Window(); ok {
			w := src.window(offset, limit)
			return r.hydrate(ctx, &w)
		}
		cands, err := r.hydrate(ctx, &src)
		if err != nil {
			return nil, err
		}
		return rest.Apply(cands)
	}

	if offset, limit, ok := rest.Window(); ok {
		ids, err := r.store.ListIDs(ctx, offset, limit)
		if err != nil {
			return nil, fmt.Errorf("list ids: %w", err)
		}
		return r.hydrate(ctx, &source{ids: ids})
	}

	ids, err := r.store.ListIDs(ctx, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("list ids: %w", err)
	}
	cands, err := r.hydrate(ctx, &source{ids: ids})
	if err != nil {
		return nil, err
	}
	return rest.Apply(cands)
}

// Count returns the number of candidates p yields. Only a MatchFilter stage
// changes the count in a way that needs records; without one the count comes
// from identifiers alone.
func (r *Repo) Count(ctx context.Context, p pipeline.Pipeline) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	offset, limit, ok := p.CountWindow()
	if !ok {
		cands, err := r.Run(ctx, p)
		if err != nil {
			return 0, err
		}
		return len(cands), nil
	}

	var total int
	if geo, isGeo := p.Source(); isGeo {
		src, err := r.geoSource(ctx, &geo)
		if err != nil {
			return 0, err
		}
		total = len(src.ids)
	} else {
		n, err := r.store.CountAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("count all: %w", err)
		}
		total = n
	}

	lo, hi := bounds(total, offset, limit)
	return hi - lo, nil
}

// Get returns one restaurant by id.
func (r *Repo) Get(ctx context.Context, id int64) (domrest.Restaurant, error) {
	recs, err := r.store.Records(ctx, []string{recordID(id)})
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domrest.Restaurant{}, domain.Errorf(domain.KindNotFound, "restaurant %d not found", id)
		}
		return domrest.Restaurant{}, fmt.Errorf("get restaurant %d: %w", id, err)
	}
	rest, err := parseFields(recs[0])
	if err != nil {
		return domrest.Restaurant{}, domain.Wrap(domain.KindStoreUnavailable, err, "corrupt restaurant record")
	}
	return rest, nil
}

// Put stores rs; rs[i] takes position start+i in store-native order.
func (r *Repo) Put(ctx context.Context, start int, rs []domrest.Restaurant) error {
	recs := make([]db.Record, 0, len(rs))
	for i := range rs {
		if err := rs[i].Validate(); err != nil {
			return err
		}
		rec, err := buildRecord(&rs[i], start+i)
		if err != nil {
			return fmt.Errorf("restaurant %d: %w", rs[i].ID, err)
		}
		recs = append(recs, rec)
	}
	if err := r.store.PutRecords(ctx, recs); err != nil {
		return fmt.Errorf("put %d restaurants: %w", len(recs), err)
	}
	return nil
}

func (r *Repo) geoSource(ctx context.Context, s *pipeline.Stage) (source, error) {
	origin := s.Point()
	hits, err := r.store.GeoSearch(ctx, &db.GeoQuery{
		Longitude:    origin.Longitude,
		Latitude:     origin.Latitude,
		RadiusMeters: s.MaxDistance(),
	})
	if err != nil {
		return source{}, fmt.Errorf("geo search: %w", err)
	}
	src := source{ids: make([]string, len(hits)), distances: make([]float64, len(hits))}
	for i, h := range hits {
		src.ids[i] = h.ID
		src.distances[i] = h.Distance
	}
	return src, nil
}

// hydrate fetches records for src and annotates distances when present.
// A referenced id with no record means the store is inconsistent.
func (r *Repo) hydrate(ctx context.Context, src *source) ([]result.Candidate, error) {
	if len(src.ids) == 0 {
		return []result.Candidate{}, nil
	}
	recs, err := r.store.Records(ctx, src.ids)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.Wrap(domain.KindStoreUnavailable, err, "index references a missing record")
		}
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	cands := make([]result.Candidate, len(recs))
	for i, m := range recs {
		rest, err := parseFields(m)
		if err != nil {
			return nil, domain.Wrap(domain.KindStoreUnavailable, err, "corrupt restaurant record")
		}
		cands[i] = result.New(rest)
		if src.distances != nil {
			cands[i] = cands[i].WithDistance(src.distances[i])
		}
	}
	return cands, nil
}

// bounds clamps [offset, offset+limit) to [0, n); limit < 0 means no limit.
func bounds(n, offset, limit int) (lo, hi int) {
	lo = min(max(offset, 0), n)
	hi = n
	if limit >= 0 {
		hi = min(lo+limit, n)
	}
	return lo, hi
}
