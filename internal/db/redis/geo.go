package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/tablefinder/internal/db"
)

// GeoSearch runs GEOSEARCH FROMLONLAT ... BYRADIUS ... ASC WITHDIST.
// Redis computes distances on a sphere, so results are great-circle meters.
func (s *Store) GeoSearch(ctx context.Context, q *db.GeoQuery) ([]db.GeoHit, error) {
	if err := q.Validate(); err != nil {
		return nil, &db.Error{Op: db.OpGeoSearch, Err: err}
	}

	cmd := s.b().Arbitrary("GEOSEARCH").Keys(s.keys.geo()).Args(
		"FROMLONLAT", formatFloat(q.Longitude), formatFloat(q.Latitude),
		"BYRADIUS", formatFloat(q.RadiusMeters), db.Unit,
		"ASC", "WITHDIST",
	).Build()

	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}
		return nil, &db.Error{Op: db.OpGeoSearch, Err: err}
	}

	return parseGeoHits(raw, q.RadiusMeters)
}

// parseGeoHits reads [[member, dist], ...]. Hits past the radius are dropped
// so that float formatting on the wire can never widen the bound.
func parseGeoHits(raw []rueidis.RedisMessage, radius float64) ([]db.GeoHit, error) {
	hits := make([]db.GeoHit, 0, len(raw))
	for i := range raw {
		pair, err := raw[i].ToArray()
		if err != nil || len(pair) < 2 {
			return nil, fmt.Errorf("parse geo hit %d: unexpected reply shape", i)
		}
		id, err := pair[0].ToString()
		if err != nil {
			return nil, fmt.Errorf("parse geo hit %d member: %w", i, err)
		}
		dist, err := pair[1].AsFloat64()
		if err != nil {
			return nil, fmt.Errorf("parse geo hit %d distance: %w", i, err)
		}
		if dist > radius {
			continue
		}
		hits = append(hits, db.GeoHit{ID: id, Distance: dist})
	}
	return hits, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
