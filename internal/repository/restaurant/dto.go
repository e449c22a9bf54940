package restaurant

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/tablefinder/internal/db"
	"github.com/kailas-cloud/tablefinder/internal/domain/geo"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
)

// Stored field names. Cuisines are kept pre-parsed as a JSON array so the
// search path never re-splits the source string.
const (
	fieldID                = "id"
	fieldName              = "name"
	fieldCountryCode       = "country_code"
	fieldCity              = "city"
	fieldAddress           = "address"
	fieldLocality          = "locality"
	fieldLongitude         = "longitude"
	fieldLatitude          = "latitude"
	fieldCuisines          = "cuisines"
	fieldAverageCost       = "average_cost_for_two"
	fieldCurrency          = "currency"
	fieldHasTableBooking   = "has_table_booking"
	fieldHasOnlineDelivery = "has_online_delivery"
	fieldIsDeliveringNow   = "is_delivering_now"
	fieldSwitchToOrderMenu = "switch_to_order_menu"
	fieldPriceRange        = "price_range"
	fieldAggregateRating   = "aggregate_rating"
	fieldRatingColor       = "rating_color"
	fieldRatingText        = "rating_text"
	fieldVotes             = "votes"
)

func recordID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// buildRecord converts a domain Restaurant into a store record.
func buildRecord(r *domrest.Restaurant, order int) (db.Record, error) {
	cuisines, err := json.Marshal(r.Cuisines.Names())
	if err != nil {
		return db.Record{}, fmt.Errorf("marshal cuisines: %w", err)
	}

	id := recordID(r.ID)
	return db.Record{
		ID:        id,
		Longitude: r.Location.Longitude,
		Latitude:  r.Location.Latitude,
		Order:     float64(order),
		Fields: map[string]string{
			fieldID:                id,
			fieldName:              r.Name,
			fieldCountryCode:       strconv.Itoa(r.CountryCode),
			fieldCity:              r.City,
			fieldAddress:           r.Address,
			fieldLocality:          r.Locality,
			fieldLongitude:         formatFloat(r.Location.Longitude),
			fieldLatitude:          formatFloat(r.Location.Latitude),
			fieldCuisines:          string(cuisines),
			fieldAverageCost:       strconv.Itoa(r.AverageCostForTwo),
			fieldCurrency:          r.Currency,
			fieldHasTableBooking:   strconv.FormatBool(r.HasTableBooking),
			fieldHasOnlineDelivery: strconv.FormatBool(r.HasOnlineDelivery),
			fieldIsDeliveringNow:   strconv.FormatBool(r.IsDeliveringNow),
			fieldSwitchToOrderMenu: strconv.FormatBool(r.SwitchToOrderMenu),
			fieldPriceRange:        strconv.Itoa(r.PriceRange),
			fieldAggregateRating:   formatFloat(r.AggregateRating),
			fieldRatingColor:       r.RatingColor,
			fieldRatingText:        r.RatingText,
			fieldVotes:             strconv.Itoa(r.Votes),
		},
	}, nil
}

// parseFields converts stored fields back into a domain Restaurant.
// Identity and location are required; other numeric fields default to zero.
func parseFields(m map[string]string) (domrest.Restaurant, error) {
	id, err := strconv.ParseInt(m[fieldID], 10, 64)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("parse %s: %w", fieldID, err)
	}
	lon, err := strconv.ParseFloat(m[fieldLongitude], 64)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("restaurant %d: parse %s: %w", id, fieldLongitude, err)
	}
	lat, err := strconv.ParseFloat(m[fieldLatitude], 64)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("restaurant %d: parse %s: %w", id, fieldLatitude, err)
	}

	var cuisines []string
	if raw := m[fieldCuisines]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &cuisines); err != nil {
			return domrest.Restaurant{}, fmt.Errorf("restaurant %d: parse %s: %w", id, fieldCuisines, err)
		}
	}

	return domrest.Restaurant{
		ID:                id,
		Name:              m[fieldName],
		CountryCode:       atoi(m[fieldCountryCode]),
		City:              m[fieldCity],
		Address:           m[fieldAddress],
		Locality:          m[fieldLocality],
		Location:          geo.NewPoint(lat, lon),
		Cuisines:          domrest.NewCuisineSet(cuisines...),
		AverageCostForTwo: atoi(m[fieldAverageCost]),
		Currency:          m[fieldCurrency],
		HasTableBooking:   m[fieldHasTableBooking] == "true",
		HasOnlineDelivery: m[fieldHasOnlineDelivery] == "true",
		IsDeliveringNow:   m[fieldIsDeliveringNow] == "true",
		SwitchToOrderMenu: m[fieldSwitchToOrderMenu] == "true",
		PriceRange:        atoi(m[fieldPriceRange]),
		AggregateRating:   atof(m[fieldAggregateRating]),
		RatingColor:       m[fieldRatingColor],
		RatingText:        m[fieldRatingText],
		Votes:             atoi(m[fieldVotes]),
	}, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
