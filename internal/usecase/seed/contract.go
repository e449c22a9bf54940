package seed

import (
	"context"

	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/ingest"
)

// RestaurantWriter stores restaurants at consecutive store-native positions.
type RestaurantWriter interface {
	Put(ctx context.Context, start int, rs []domrest.Restaurant) error
}

// RowSource yields parsed rows until io.EOF; *ingest.RowError marks a skippable row.
type RowSource interface {
	Next() (ingest.Row, error)
}
