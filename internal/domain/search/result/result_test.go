package result

import (
	"testing"

	"github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{4, 2, 2},
		{5, 2, 3},
		{5, 0, 0},
	}
	for _, tc := range tests {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestNewPage_EmptyIsNotNil(t *testing.T) {
	p := NewPage(0, 12, nil)
	if p.Restaurants == nil {
		t.Fatal("expected empty, non-nil slice")
	}
	if p.TotalPages != 0 || p.TotalRestaurants != 0 {
		t.Errorf("got %+v", p)
	}
}

func TestCandidate_Annotations(t *testing.T) {
	c := New(restaurant.Restaurant{ID: 1, Name: "A"})
	if _, ok := c.Distance(); ok {
		t.Error("fresh candidate must have no distance")
	}
	if _, ok := c.MatchCount(); ok {
		t.Error("fresh candidate must have no matchCount")
	}

	annotated := c.WithDistance(120.5).WithMatchCount(2)
	if d, ok := annotated.Distance(); !ok || d != 120.5 {
		t.Errorf("Distance() = %v, %v", d, ok)
	}
	if m, ok := annotated.MatchCount(); !ok || m != 2 {
		t.Errorf("MatchCount() = %v, %v", m, ok)
	}
	if _, ok := c.Distance(); ok {
		t.Error("WithDistance must not mutate the receiver")
	}
}
