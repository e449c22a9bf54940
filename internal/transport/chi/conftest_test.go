package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tablefinder/internal/domain/geo"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/query"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/tablefinder/internal/usecase/health"
)

type mockRestaurants struct {
	searchFn func(ctx context.Context, raw query.Raw) (result.Page, error)
	listFn   func(ctx context.Context, page, limit int) (result.Page, error)
	getFn    func(ctx context.Context, id int64) (domrest.Restaurant, error)

	lastRaw   query.Raw
	lastPage  int
	lastLimit int
	lastID    int64
}

func (m *mockRestaurants) Search(ctx context.Context, raw query.Raw) (result.Page, error) {
	m.lastRaw = raw
	if m.searchFn != nil {
		return m.searchFn(ctx, raw)
	}
	return result.NewPage(0, 12, nil), nil
}

func (m *mockRestaurants) List(ctx context.Context, page, limit int) (result.Page, error) {
	m.lastPage, m.lastLimit = page, limit
	if m.listFn != nil {
		return m.listFn(ctx, page, limit)
	}
	return result.NewPage(0, 20, nil), nil
}

func (m *mockRestaurants) Get(ctx context.Context, id int64) (domrest.Restaurant, error) {
	m.lastID = id
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return sampleRestaurant(id), nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func sampleRestaurant(id int64) domrest.Restaurant {
	return domrest.Restaurant{
		ID:              id,
		Name:            "Onesta",
		CountryCode:     1,
		City:            "Bangalore",
		Location:        geo.NewPoint(12.9121, 77.6446),
		Cuisines:        domrest.ParseCuisines("Pizza, Cafe, Italian"),
		HasTableBooking: true,
		PriceRange:      2,
		AggregateRating: 4.6,
		RatingText:      "Excellent",
		Votes:           3422,
	}
}

func newTestServer(t *testing.T) (http.Handler, *mockRestaurants, *mockHealth) {
	t.Helper()
	rs := &mockRestaurants{}
	hs := &mockHealth{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
	}}
	r := gochi.NewRouter()
	NewServer(rs, hs, zap.NewNop()).Routes(r)
	return r, rs, hs
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
