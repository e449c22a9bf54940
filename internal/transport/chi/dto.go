package chi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/result"
)

// flexInt accepts a JSON number or a numeric string. Anything else decodes
// to "not supplied" so the service falls back to its default.
type flexInt struct {
	v   int
	set bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	*f = flexInt{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil //nolint:nilerr // malformed pagination falls back to defaults
		}
	}
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		*f = flexInt{v: v, set: true}
		return nil
	}
	// NaN and values outside the int range are left unset.
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err == nil && v >= math.MinInt && v < -math.MinInt {
		*f = flexInt{v: int(v), set: true}
	}
	return nil
}

func (f flexInt) value() int { return f.v }

// flexFloat accepts a JSON number or a numeric string. A malformed value is an
// error: a coordinate that cannot be read must not silently disappear.
type flexFloat struct {
	v *float64
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	*f = flexFloat{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("coordinate: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("coordinate %q is not a number", s)
	}
	f.v = &v
	return nil
}

// stringList accepts a JSON array of strings or a single comma-separated string.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("cuisines: %w", err)
		}
		*l = strings.Split(s, ",")
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("cuisines must be a list of strings: %w", err)
	}
	*l = arr
	return nil
}

// searchRequest is the body of POST /api/restaurants-by-location.
type searchRequest struct {
	Lat      flexFloat  `json:"lat"`
	Long     flexFloat  `json:"long"`
	Cuisines stringList `json:"cuisines"`
	Page     flexInt    `json:"page"`
	Limit    flexInt    `json:"limit"`
}

// listRequest is the body of POST /api/all-restaurants.
type listRequest struct {
	Page  flexInt `json:"page"`
	Limit flexInt `json:"limit"`
}

// lookupRequest is the body of POST /api/restaurant.
type lookupRequest struct {
	ID flexInt `json:"Id"`
}

// restaurantResponse keeps the column names of the source dataset, which
// the web client reads directly.
type restaurantResponse struct {
	ID                int64    `json:"Restaurant ID"`
	Name              string   `json:"Restaurant Name"`
	CountryCode       int      `json:"Country Code"`
	City              string   `json:"City"`
	Address           string   `json:"Address"`
	Locality          string   `json:"Locality"`
	Longitude         float64  `json:"Longitude"`
	Latitude          float64  `json:"Latitude"`
	Cuisines          string   `json:"Cuisines"`
	CuisineList       []string `json:"cuisineList"`
	AverageCostForTwo int      `json:"Average Cost for two"`
	Currency          string   `json:"Currency"`
	HasTableBooking   string   `json:"Has Table booking"`
	HasOnlineDelivery string   `json:"Has Online delivery"`
	IsDeliveringNow   string   `json:"Is delivering now"`
	SwitchToOrderMenu string   `json:"Switch to order menu"`
	PriceRange        int      `json:"Price range"`
	AggregateRating   float64  `json:"Aggregate rating"`
	RatingColor       string   `json:"Rating color"`
	RatingText        string   `json:"Rating text"`
	Votes             int      `json:"Votes"`
	Distance          *float64 `json:"distance,omitempty"`
	MatchCount        *int     `json:"matchCount,omitempty"`
}

type searchResponse struct {
	TotalPages       int                  `json:"totalPages"`
	TotalRestaurants int                  `json:"totalRestaurants"`
	Restaurants      []restaurantResponse `json:"restaurants"`
}

type listResponse struct {
	Page             int                  `json:"page"`
	TotalPages       int                  `json:"totalPages"`
	TotalRestaurants int                  `json:"totalRestaurants"`
	Restaurants      []restaurantResponse `json:"restaurants"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	Restaurants int               `json:"restaurants"`
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func restaurantToResponse(r *domrest.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:                r.ID,
		Name:              r.Name,
		CountryCode:       r.CountryCode,
		City:              r.City,
		Address:           r.Address,
		Locality:          r.Locality,
		Longitude:         r.Location.Longitude,
		Latitude:          r.Location.Latitude,
		Cuisines:          r.Cuisines.String(),
		CuisineList:       r.Cuisines.Names(),
		AverageCostForTwo: r.AverageCostForTwo,
		Currency:          r.Currency,
		HasTableBooking:   yesNo(r.HasTableBooking),
		HasOnlineDelivery: yesNo(r.HasOnlineDelivery),
		IsDeliveringNow:   yesNo(r.IsDeliveringNow),
		SwitchToOrderMenu: yesNo(r.SwitchToOrderMenu),
		PriceRange:        r.PriceRange,
		AggregateRating:   r.AggregateRating,
		RatingColor:       r.RatingColor,
		RatingText:        r.RatingText,
		Votes:             r.Votes,
	}
}

func candidateToResponse(c *result.Candidate) restaurantResponse {
	r := c.Restaurant()
	out := restaurantToResponse(&r)
	if d, ok := c.Distance(); ok {
		out.Distance = &d
	}
	if n, ok := c.MatchCount(); ok {
		out.MatchCount = &n
	}
	return out
}

func candidatesToResponse(cs []result.Candidate) []restaurantResponse {
	out := make([]restaurantResponse, len(cs))
	for i := range cs {
		out[i] = candidateToResponse(&cs[i])
	}
	return out
}
