// Package restaurant holds the stored restaurant record.
package restaurant

import (
	"fmt"

	"github.com/kailas-cloud/tablefinder/internal/domain/geo"
)

// Restaurant is a seeded, read-only restaurant record.
type Restaurant struct {
	ID                int64
	Name              string
	CountryCode       int
	City              string
	Address           string
	Locality          string
	Location          geo.Point
	Cuisines          CuisineSet
	AverageCostForTwo int
	Currency          string
	HasTableBooking   bool
	HasOnlineDelivery bool
	IsDeliveringNow   bool
	SwitchToOrderMenu bool
	PriceRange        int
	AggregateRating   float64
	RatingColor       string
	RatingText        string
	Votes             int
}

// Validate checks the record invariants enforced at ingestion.
func (r *Restaurant) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("restaurant ID must be positive, got %d", r.ID)
	}
	if r.Name == "" {
		return fmt.Errorf("restaurant %d: name is required", r.ID)
	}
	if !r.Location.Valid() {
		return fmt.Errorf("restaurant %d: invalid coordinate (%v, %v)",
			r.ID, r.Location.Latitude, r.Location.Longitude)
	}
	if r.PriceRange < 0 || r.PriceRange > 4 {
		return fmt.Errorf("restaurant %d: price range %d out of range", r.ID, r.PriceRange)
	}
	if r.AggregateRating < 0 || r.AggregateRating > 5 {
		return fmt.Errorf("restaurant %d: rating %v out of [0,5]", r.ID, r.AggregateRating)
	}
	return nil
}
