package restaurant

import (
	"context"
	"os"
	"sync/atomic"
	"testing"

	"github.com/kailas-cloud/tablefinder/internal/domain"
	"github.com/kailas-cloud/tablefinder/internal/domain/geo"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/pipeline"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/result"
	"github.com/kailas-cloud/tablefinder/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}

// mockRepo evaluates pipelines in-process over a fixed dataset.
type mockRepo struct {
	data []result.Candidate

	runFn   func(ctx context.Context, p pipeline.Pipeline) ([]result.Candidate, error)
	countFn func(ctx context.Context, p pipeline.Pipeline) (int, error)
	getFn   func(ctx context.Context, id int64) (domrest.Restaurant, error)

	runCalls   atomic.Int32
	countCalls atomic.Int32
}

func (m *mockRepo) Run(ctx context.Context, p pipeline.Pipeline) ([]result.Candidate, error) {
	m.runCalls.Add(1)
	if m.runFn != nil {
		return m.runFn(ctx, p)
	}
	return p.Apply(m.data)
}

func (m *mockRepo) Count(ctx context.Context, p pipeline.Pipeline) (int, error) {
	m.countCalls.Add(1)
	if m.countFn != nil {
		return m.countFn(ctx, p)
	}
	out, err := p.Apply(m.data)
	return len(out), err
}

func (m *mockRepo) Get(ctx context.Context, id int64) (domrest.Restaurant, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	for i := range m.data {
		if r := m.data[i].Restaurant(); r.ID == id {
			return r, nil
		}
	}
	return domrest.Restaurant{}, domain.Errorf(domain.KindNotFound, "restaurant %d not found", id)
}

func cand(id int64, lat, lon float64, cuisines string) result.Candidate {
	return result.New(domrest.Restaurant{
		ID:       id,
		Name:     "r",
		Location: geo.NewPoint(lat, lon),
		Cuisines: domrest.ParseCuisines(cuisines),
	})
}

// dataset: five records around Bangalore, the last one ~25 km away.
func dataset() []result.Candidate {
	return []result.Candidate{
		cand(1, 12.975, 77.59, "North Indian, Mughlai"),
		cand(2, 12.98, 77.60, "Chinese, Thai"),
		cand(3, 12.96, 77.58, "Cafe"),
		cand(4, 12.99, 77.59, "Chinese"),
		cand(5, 13.20, 77.70, "Chinese, Italian"),
	}
}

func newTestService(t *testing.T, cfg Config) (*Service, *mockRepo) {
	t.Helper()
	repo := &mockRepo{data: dataset()}
	return New(repo, cfg), repo
}

func ids(cs []result.Candidate) []int64 {
	out := make([]int64, len(cs))
	for i := range cs {
		out[i] = cs[i].Restaurant().ID
	}
	return out
}

func f(v float64) *float64 { return &v }
