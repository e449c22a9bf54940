package restaurant

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/kailas-cloud/tablefinder/internal/db"
	"github.com/kailas-cloud/tablefinder/internal/domain/geo"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
)

// memStore is an in-memory store that mimics the Redis layout: records by
// id, insertion order as store-native order, spherical geo search.
type memStore struct {
	order   []string
	records map[string]db.Record

	recordsCalls int
	fetched      int

	geoErr     error
	listErr    error
	countErr   error
	recordsErr error
	putErr     error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]db.Record)}
}

func (m *memStore) GeoSearch(_ context.Context, q *db.GeoQuery) ([]db.GeoHit, error) {
	if m.geoErr != nil {
		return nil, m.geoErr
	}
	var hits []db.GeoHit
	for _, id := range m.order {
		rec := m.records[id]
		d := geo.Haversine(q.Latitude, q.Longitude, rec.Latitude, rec.Longitude)
		if d <= q.RadiusMeters {
			hits = append(hits, db.GeoHit{ID: id, Distance: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits, nil
}

func (m *memStore) ListIDs(_ context.Context, offset, limit int) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	lo, hi := bounds(len(m.order), offset, limit)
	return append([]string{}, m.order[lo:hi]...), nil
}

func (m *memStore) CountAll(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.order), nil
}

func (m *memStore) Records(_ context.Context, ids []string) ([]map[string]string, error) {
	m.recordsCalls++
	if m.recordsErr != nil {
		return nil, m.recordsErr
	}
	out := make([]map[string]string, len(ids))
	for i, id := range ids {
		rec, ok := m.records[id]
		if !ok {
			return nil, &db.Error{Op: db.OpRecords, Err: fmt.Errorf("id %s: %w", id, db.ErrKeyNotFound)}
		}
		out[i] = rec.Fields
	}
	m.fetched += len(ids)
	return out, nil
}

func (m *memStore) PutRecords(_ context.Context, recs []db.Record) error {
	if m.putErr != nil {
		return m.putErr
	}
	for _, rec := range recs {
		if _, ok := m.records[rec.ID]; !ok {
			m.order = append(m.order, rec.ID)
		}
		m.records[rec.ID] = rec
	}
	return nil
}

var center = geo.NewPoint(12.97, 77.59)

func testRestaurant(id int64, lat, lon float64, cuisines string) domrest.Restaurant {
	return domrest.Restaurant{
		ID:              id,
		Name:            fmt.Sprintf("Restaurant %d", id),
		City:            "Bangalore",
		Location:        geo.NewPoint(lat, lon),
		Cuisines:        domrest.ParseCuisines(cuisines),
		PriceRange:      2,
		AggregateRating: 4.1,
	}
}

// dataset: five records around Bangalore, the last one ~25 km away.
func dataset() []domrest.Restaurant {
	return []domrest.Restaurant{
		testRestaurant(1, 12.975, 77.59, "North Indian, Mughlai"),
		testRestaurant(2, 12.98, 77.60, "Chinese, Thai"),
		testRestaurant(3, 12.96, 77.58, "Cafe"),
		testRestaurant(4, 12.99, 77.59, "Chinese"),
		testRestaurant(5, 13.20, 77.70, "Chinese, Italian"),
	}
}

func newSeededRepo(t *testing.T) (*Repo, *memStore) {
	t.Helper()
	ms := newMemStore()
	repo := New(ms)
	if err := repo.Put(context.Background(), 0, dataset()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	ms.recordsCalls, ms.fetched = 0, 0
	return repo, ms
}
