package restaurant

import (
	"testing"

	"github.com/kailas-cloud/tablefinder/internal/domain/geo"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
)

func TestRecordRoundTrip(t *testing.T) {
	in := domrest.Restaurant{
		ID:                18406463,
		Name:              "Onesta",
		CountryCode:       1,
		City:              "Bangalore",
		Address:           "2469, 3rd Floor, 27th Main, HSR",
		Locality:          "HSR",
		Location:          geo.NewPoint(12.9121, 77.6446),
		Cuisines:          domrest.ParseCuisines("Pizza, Cafe, Italian"),
		AverageCostForTwo: 600,
		Currency:          "Indian Rupees(Rs.)",
		HasOnlineDelivery: true,
		IsDeliveringNow:   true,
		PriceRange:        2,
		AggregateRating:   4.6,
		RatingColor:       "Dark Green",
		RatingText:        "Excellent",
		Votes:             3422,
	}

	rec, err := buildRecord(&in, 7)
	if err != nil {
		t.Fatalf("buildRecord: %v", err)
	}
	if rec.ID != "18406463" || rec.Order != 7 || rec.Longitude != 77.6446 || rec.Latitude != 12.9121 {
		t.Errorf("unexpected record header: %+v", rec)
	}
	if rec.Fields[fieldCuisines] != `["Pizza","Cafe","Italian"]` {
		t.Errorf("cuisines stored as %q", rec.Fields[fieldCuisines])
	}

	out, err := parseFields(rec.Fields)
	if err != nil {
		t.Fatalf("parseFields: %v", err)
	}
	if out.ID != in.ID || out.Name != in.Name || out.Location != in.Location ||
		out.Cuisines.String() != in.Cuisines.String() || out.Votes != in.Votes ||
		out.AggregateRating != in.AggregateRating || out.HasOnlineDelivery != in.HasOnlineDelivery ||
		out.HasTableBooking || out.Currency != in.Currency {
		t.Errorf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
	}
}

func TestParseFields_Errors(t *testing.T) {
	base := map[string]string{fieldID: "1", fieldLongitude: "77.5", fieldLatitude: "12.9"}
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad id", fieldID, "x"},
		{"missing longitude", fieldLongitude, ""},
		{"bad latitude", fieldLatitude, "north"},
		{"bad cuisines", fieldCuisines, "Chinese, Thai"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := make(map[string]string, len(base)+1)
			for k, v := range base {
				m[k] = v
			}
			m[tc.key] = tc.value
			if _, err := parseFields(m); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseFields_NoCuisines(t *testing.T) {
	r, err := parseFields(map[string]string{fieldID: "1", fieldLongitude: "0", fieldLatitude: "0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Cuisines.Len() != 0 {
		t.Errorf("expected empty cuisine set, got %v", r.Cuisines.Names())
	}
}
