// Package query turns raw search input into a validated Descriptor.
package query

import (
	"math"
	"strings"

	"github.com/kailas-cloud/tablefinder/internal/domain"
	"github.com/kailas-cloud/tablefinder/internal/domain/geo"
	"github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
)

// Pagination defaults.
const (
	DefaultSearchLimit = 12
	DefaultListLimit   = 20
	MaxLimit           = 100
)

// Raw is the possibly-partial input of a search request.
// Zero Page/Limit mean "not supplied".
type Raw struct {
	Lat      *float64
	Long     *float64
	Cuisines []string
	Page     int
	Limit    int
}

// Descriptor is a normalized, immutable search query.
type Descriptor struct {
	point    *geo.Point
	cuisines []string
	page     int
	limit    int
}

// Limits configures pagination defaults for a Normalizer.
type Limits struct {
	DefaultLimit int
	MaxLimit     int
}

// Normalizer validates raw queries against configured limits.
type Normalizer struct {
	limits Limits
}

// NewNormalizer creates a Normalizer. Zero limits fall back to package defaults.
func NewNormalizer(l Limits) *Normalizer {
	if l.DefaultLimit <= 0 {
		l.DefaultLimit = DefaultSearchLimit
	}
	if l.MaxLimit <= 0 {
		l.MaxLimit = MaxLimit
	}
	if l.DefaultLimit > l.MaxLimit {
		l.DefaultLimit = l.MaxLimit
	}
	return &Normalizer{limits: l}
}

// Normalize validates raw and returns a Descriptor.
// A query must carry a location, a non-empty cuisine list, or both.
func (n *Normalizer) Normalize(raw Raw) (Descriptor, error) {
	var point *geo.Point
	switch {
	case raw.Lat != nil && raw.Long != nil:
		p := geo.NewPoint(*raw.Lat, *raw.Long)
		if !p.Valid() {
			return Descriptor{}, domain.Errorf(domain.KindInvalidQuery,
				"location (%v, %v) is not a valid coordinate", *raw.Lat, *raw.Long)
		}
		point = &p
	case raw.Lat != nil || raw.Long != nil:
		return Descriptor{}, domain.Errorf(domain.KindInvalidQuery, "location requires both lat and long")
	}

	cuisines := normalizeCuisines(raw.Cuisines)

	if point == nil && len(cuisines) == 0 {
		return Descriptor{}, domain.Errorf(domain.KindInvalidQuery, "a location or at least one cuisine is required")
	}

	page, limit, err := n.paginate(raw.Page, raw.Limit)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{point: point, cuisines: cuisines, page: page, limit: limit}, nil
}

// Listing returns an unconstrained Descriptor for the plain listing.
// It bypasses the location/cuisine requirement on purpose.
func (n *Normalizer) Listing(page, limit int) (Descriptor, error) {
	page, limit, err := n.paginate(page, limit)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{page: page, limit: limit}, nil
}

// paginate coerces page and limit to their defaults. A page whose end
// offset does not fit in an int is rejected.
func (n *Normalizer) paginate(page, limit int) (int, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = n.limits.DefaultLimit
	}
	if limit > n.limits.MaxLimit {
		limit = n.limits.MaxLimit
	}
	if page > math.MaxInt/limit {
		return 0, 0, domain.Errorf(domain.KindInvalidQuery, "page %d is out of range", page)
	}
	return page, limit, nil
}

// normalizeCuisines trims, drops blanks and collapses case-insensitive duplicates.
func normalizeCuisines(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		key := restaurant.FoldCuisine(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Point returns the query location, or nil.
func (d *Descriptor) Point() *geo.Point { return d.point }

// HasPoint reports whether a location was supplied.
func (d *Descriptor) HasPoint() bool { return d.point != nil }

// Cuisines returns the requested cuisines in request order.
func (d *Descriptor) Cuisines() []string { return d.cuisines }

// HasCuisines reports whether a non-empty cuisine list was supplied.
func (d *Descriptor) HasCuisines() bool { return len(d.cuisines) > 0 }

// Page returns the 1-based page number.
func (d *Descriptor) Page() int { return d.page }

// Limit returns the page size.
func (d *Descriptor) Limit() int { return d.limit }

// Offset returns the number of candidates skipped before this page.
func (d *Descriptor) Offset() int { return (d.page - 1) * d.limit }
