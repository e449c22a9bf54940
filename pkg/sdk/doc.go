// Package tablefinder embeds the restaurant search engine in a Go program,
// talking to the store directly instead of through the HTTP API.
//
//	client, _ := tablefinder.New(ctx, tablefinder.WithValkey("localhost:6379", ""))
//	defer client.Close()
//
//	lat, long := 12.9716, 77.5946
//	page, _ := client.Search(ctx, tablefinder.Query{
//	    Lat:      &lat,
//	    Long:     &long,
//	    Cuisines: []string{"Chinese", "Italian"},
//	    Limit:    10,
//	})
//	for _, r := range page.Restaurants {
//	    fmt.Println(r.Name, r.DistanceMeters, r.MatchCount)
//	}
//
// Restaurants within 10 km of the point are ranked by cuisine overlap, then by
// distance. Without a point the whole dataset is ranked by overlap; without
// cuisines the results are ordered by distance.
package tablefinder
