package tablefinder

import (
	dombatch "github.com/kailas-cloud/tablefinder/internal/domain/batch"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/query"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/result"
)

func (q *Query) raw() query.Raw {
	return query.Raw{
		Lat:      q.Lat,
		Long:     q.Long,
		Cuisines: q.Cuisines,
		Page:     q.Page,
		Limit:    q.Limit,
	}
}

func restaurantFromDomain(r *domrest.Restaurant) Restaurant {
	return Restaurant{
		ID:                r.ID,
		Name:              r.Name,
		CountryCode:       r.CountryCode,
		City:              r.City,
		Address:           r.Address,
		Locality:          r.Locality,
		Latitude:          r.Location.Latitude,
		Longitude:         r.Location.Longitude,
		Cuisines:          r.Cuisines.Names(),
		AverageCostForTwo: r.AverageCostForTwo,
		Currency:          r.Currency,
		HasTableBooking:   r.HasTableBooking,
		HasOnlineDelivery: r.HasOnlineDelivery,
		IsDeliveringNow:   r.IsDeliveringNow,
		SwitchToOrderMenu: r.SwitchToOrderMenu,
		PriceRange:        r.PriceRange,
		AggregateRating:   r.AggregateRating,
		RatingColor:       r.RatingColor,
		RatingText:        r.RatingText,
		Votes:             r.Votes,
	}
}

func pageFromDomain(p *result.Page) Page {
	out := Page{
		Number:           p.Number,
		TotalPages:       p.TotalPages,
		TotalRestaurants: p.TotalRestaurants,
		Restaurants:      make([]Result, len(p.Restaurants)),
	}
	for i := range p.Restaurants {
		c := &p.Restaurants[i]
		r := c.Restaurant()
		res := Result{Restaurant: restaurantFromDomain(&r)}
		if d, ok := c.Distance(); ok {
			res.DistanceMeters = &d
		}
		if n, ok := c.MatchCount(); ok {
			res.MatchCount = &n
		}
		out.Restaurants[i] = res
	}
	return out
}

func loadResultFromDomain(s *dombatch.Summary) LoadResult {
	out := LoadResult{Loaded: s.Loaded, Batches: s.Batches}
	for _, r := range s.Rejected {
		out.Rejected = append(out.Rejected, RejectedRow{Line: r.Line(), Err: r.Err()})
	}
	return out
}
