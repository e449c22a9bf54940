package tablefinder

import (
	"context"

	dombatch "github.com/kailas-cloud/tablefinder/internal/domain/batch"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/query"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/tablefinder/internal/usecase/health"
	"github.com/kailas-cloud/tablefinder/internal/usecase/seed"
)

// --- restaurantUseCase mock ---

type mockRestaurantUC struct {
	searchFn func(ctx context.Context, raw query.Raw) (result.Page, error)
	listFn   func(ctx context.Context, page, limit int) (result.Page, error)
	getFn    func(ctx context.Context, id int64) (domrest.Restaurant, error)
}

func (m *mockRestaurantUC) Search(ctx context.Context, raw query.Raw) (result.Page, error) {
	return m.searchFn(ctx, raw)
}

func (m *mockRestaurantUC) List(ctx context.Context, page, limit int) (result.Page, error) {
	return m.listFn(ctx, page, limit)
}

func (m *mockRestaurantUC) Get(ctx context.Context, id int64) (domrest.Restaurant, error) {
	return m.getFn(ctx, id)
}

// --- loadUseCase mock ---

type mockLoader struct {
	rows    []int64
	summary dombatch.Summary
	err     error
}

func (m *mockLoader) Load(_ context.Context, src seed.RowSource) (dombatch.Summary, error) {
	for {
		row, err := src.Next()
		if err != nil {
			break
		}
		m.rows = append(m.rows, row.Restaurant.ID)
	}
	return m.summary, m.err
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(svc restaurantUseCase, loader loadUseCase) *Client {
	return &Client{
		restaurantSvc: svc,
		newLoader:     func(int) loadUseCase { return loader },
	}
}
