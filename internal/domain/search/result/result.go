package result

import "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"

// Candidate is a restaurant annotated by the search pipeline.
type Candidate struct {
	restaurant restaurant.Restaurant
	distance   *float64
	matchCount *int
}

// New creates an unannotated candidate.
func New(r restaurant.Restaurant) Candidate {
	return Candidate{restaurant: r}
}

// WithDistance returns a copy annotated with the distance in meters.
func (c Candidate) WithDistance(meters float64) Candidate {
	c.distance = &meters
	return c
}

// WithMatchCount returns a copy annotated with the cuisine overlap.
func (c Candidate) WithMatchCount(n int) Candidate {
	c.matchCount = &n
	return c
}

// Restaurant returns the underlying record.
func (c *Candidate) Restaurant() restaurant.Restaurant { return c.restaurant }

// Distance returns meters from the query point (ok=false without a point).
func (c *Candidate) Distance() (float64, bool) {
	if c.distance == nil {
		return 0, false
	}
	return *c.distance, true
}

// MatchCount returns the cuisine overlap (ok=false without requested cuisines).
func (c *Candidate) MatchCount() (int, bool) {
	if c.matchCount == nil {
		return 0, false
	}
	return *c.matchCount, true
}

// Page is one page of a paginated search.
type Page struct {
	Number           int // 1-based
	TotalPages       int
	TotalRestaurants int
	Restaurants      []Candidate
}

// NewPage computes TotalPages as ceil(total/limit), with zero pages for zero matches.
func NewPage(total, limit int, items []Candidate) Page {
	if items == nil {
		items = []Candidate{}
	}
	return Page{
		TotalPages:       TotalPages(total, limit),
		TotalRestaurants: total,
		Restaurants:      items,
	}
}

// TotalPages returns ceil(total/limit); 0 when total or limit is not positive.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
