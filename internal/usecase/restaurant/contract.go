package restaurant

import (
	"context"

	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/pipeline"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/result"
)

// Repository defines the storage contract for restaurant queries.
type Repository interface {
	// Run evaluates a pipeline and returns its candidates in pipeline order.
	Run(ctx context.Context, p pipeline.Pipeline) ([]result.Candidate, error)
	// Count returns how many candidates a pipeline yields.
	Count(ctx context.Context, p pipeline.Pipeline) (int, error)
	Get(ctx context.Context, id int64) (domrest.Restaurant, error)
}
