package tablefinder

// Query is a restaurant search. Lat and Long must be set together or not at all.
// Zero Page or Limit fall back to the first page and the default page size.
type Query struct {
	Lat      *float64
	Long     *float64
	Cuisines []string
	Page     int
	Limit    int
}

// Restaurant is one stored record.
type Restaurant struct {
	ID                int64
	Name              string
	CountryCode       int
	City              string
	Address           string
	Locality          string
	Latitude          float64
	Longitude         float64
	Cuisines          []string
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

// Result is a ranked restaurant. DistanceMeters is nil when the query had no
// point; MatchCount is nil when it had no cuisines.
type Result struct {
	Restaurant
	DistanceMeters *float64
	MatchCount     *int
}

// Page is one page of results.
type Page struct {
	Number           int
	TotalPages       int
	TotalRestaurants int
	Restaurants      []Result
}

// LoadResult summarizes a Load call.
type LoadResult struct {
	Loaded   int
	Batches  int
	Rejected []RejectedRow
}

// RejectedRow is an input row that failed parsing or validation.
type RejectedRow struct {
	Line int
	Err  error
}
