package query

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/kailas-cloud/tablefinder/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestNormalize_RequiresLocationOrCuisines(t *testing.T) {
	n := NewNormalizer(Limits{})
	inputs := []Raw{
		{},
		{Cuisines: []string{}},
		{Cuisines: []string{"  ", ""}},
		{Page: 2, Limit: 5},
	}
	for i, raw := range inputs {
		_, err := n.Normalize(raw)
		if !errors.Is(err, domain.ErrInvalidQuery) {
			t.Errorf("case %d: expected ErrInvalidQuery, got %v", i, err)
		}
	}
}

func TestNormalize_PartialLocation(t *testing.T) {
	n := NewNormalizer(Limits{})
	_, err := n.Normalize(Raw{Lat: ptr(12.97), Cuisines: []string{"Chinese"}})
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestNormalize_InvalidCoordinates(t *testing.T) {
	n := NewNormalizer(Limits{})
	for _, lat := range []float64{math.NaN(), math.Inf(-1), 95} {
		_, err := n.Normalize(Raw{Lat: ptr(lat), Long: ptr(77.59)})
		if domain.KindOf(err) != domain.KindInvalidQuery {
			t.Errorf("lat=%v: expected invalid_query, got %v", lat, err)
		}
	}
}

func TestNormalize_ZeroCoordinateIsValid(t *testing.T) {
	n := NewNormalizer(Limits{})
	d, err := n.Normalize(Raw{Lat: ptr(0), Long: ptr(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.HasPoint() || d.Point().Latitude != 0 {
		t.Fatalf("expected point at origin, got %+v", d.Point())
	}
}

func TestNormalize_Defaults(t *testing.T) {
	n := NewNormalizer(Limits{})
	d, err := n.Normalize(Raw{Lat: ptr(12.97), Long: ptr(77.59)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Page() != 1 || d.Limit() != DefaultSearchLimit || d.Offset() != 0 {
		t.Errorf("got page=%d limit=%d offset=%d", d.Page(), d.Limit(), d.Offset())
	}
	if d.HasCuisines() {
		t.Error("expected no cuisines")
	}
}

func TestNormalize_PaginationCoercion(t *testing.T) {
	n := NewNormalizer(Limits{DefaultLimit: 12, MaxLimit: 50})
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 12},
		{-3, -1, 1, 12},
		{3, 5, 3, 5},
		{2, 500, 2, 50},
		{math.MaxInt / 50, 500, math.MaxInt / 50, 50},
	}
	for _, tc := range tests {
		d, err := n.Normalize(Raw{Cuisines: []string{"Cafe"}, Page: tc.page, Limit: tc.limit})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Page() != tc.wantPage || d.Limit() != tc.wantLimit {
			t.Errorf("page=%d limit=%d: got %d/%d, want %d/%d",
				tc.page, tc.limit, d.Page(), d.Limit(), tc.wantPage, tc.wantLimit)
		}
	}
}

func TestNormalize_PageOutOfRange(t *testing.T) {
	n := NewNormalizer(Limits{DefaultLimit: 12, MaxLimit: 100})
	tests := []struct {
		page, limit int
	}{
		{math.MaxInt / 50, 100},
		{math.MaxInt, 0},
		{math.MaxInt/12 + 1, 0},
	}
	for _, tc := range tests {
		_, err := n.Normalize(Raw{Cuisines: []string{"Chinese"}, Page: tc.page, Limit: tc.limit})
		if domain.KindOf(err) != domain.KindInvalidQuery {
			t.Errorf("page=%d limit=%d: expected invalid_query, got %v", tc.page, tc.limit, err)
		}
	}

	// The last page whose end offset fits in an int is still accepted.
	d, err := n.Normalize(Raw{Cuisines: []string{"Chinese"}, Page: math.MaxInt / 50, Limit: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Offset() < 0 || d.Offset() > math.MaxInt-d.Limit() {
		t.Errorf("offset %d overflows with limit %d", d.Offset(), d.Limit())
	}
}

func TestNormalize_CuisineCleanup(t *testing.T) {
	n := NewNormalizer(Limits{})
	d, err := n.Normalize(Raw{Cuisines: []string{" Chinese ", "Italian", "chinese", ""}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Chinese", "Italian"}
	if !reflect.DeepEqual(d.Cuisines(), want) {
		t.Errorf("Cuisines() = %v, want %v", d.Cuisines(), want)
	}
}

func TestListing_HasNoConstraints(t *testing.T) {
	n := NewNormalizer(Limits{DefaultLimit: DefaultListLimit})
	d, err := n.Listing(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.HasPoint() || d.HasCuisines() {
		t.Error("listing descriptor must be unconstrained")
	}
	if d.Page() != 1 || d.Limit() != DefaultListLimit {
		t.Errorf("got page=%d limit=%d", d.Page(), d.Limit())
	}
}

func TestListing_PageOutOfRange(t *testing.T) {
	n := NewNormalizer(Limits{DefaultLimit: DefaultListLimit})
	_, err := n.Listing(math.MaxInt, 0)
	if domain.KindOf(err) != domain.KindInvalidQuery {
		t.Fatalf("expected invalid_query, got %v", err)
	}
}
