// Package pipeline models the ordered stages of a restaurant search and
// builds the count and page variants of one query from a shared prefix.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/tablefinder/internal/domain/geo"
)

// Op identifies a stage.
type Op int

// Stage operations.
const (
	OpGeoFilter Op = iota + 1
	OpScore
	OpMatchFilter
	OpSortByMatch
	OpSkip
	OpLimit
)

func (o Op) String() string {
	switch o {
	case OpGeoFilter:
		return "geo_filter"
	case OpScore:
		return "score"
	case OpMatchFilter:
		return "match_filter"
	case OpSortByMatch:
		return "sort_match_desc"
	case OpSkip:
		return "skip"
	case OpLimit:
		return "limit"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Stage is one step of a pipeline.
type Stage struct {
	op          Op
	point       geo.Point
	maxDistance float64
	cuisines    []string
	n           int
}

// GeoFilter keeps records within maxDistance meters of point (spherical
// distance) and annotates each with its distance, nearest first.
func GeoFilter(point geo.Point, maxDistance float64) Stage {
	return Stage{op: OpGeoFilter, point: point, maxDistance: maxDistance}
}

// Score annotates every candidate with its cuisine overlap. It never filters.
func Score(cuisines []string) Stage {
	c := make([]string, len(cuisines))
	copy(c, cuisines)
	return Stage{op: OpScore, cuisines: c}
}

// MatchFilter drops candidates whose matchCount is below minMatches.
func MatchFilter(minMatches int) Stage {
	return Stage{op: OpMatchFilter, n: minMatches}
}

// SortByMatchDesc orders candidates by matchCount, stable for ties.
func SortByMatchDesc() Stage {
	return Stage{op: OpSortByMatch}
}

// Skip drops the first n candidates.
func Skip(n int) Stage {
	return Stage{op: OpSkip, n: n}
}

// Limit keeps at most n candidates.
func Limit(n int) Stage {
	return Stage{op: OpLimit, n: n}
}

// Op returns the stage operation.
func (s *Stage) Op() Op { return s.op }

// Point returns the GeoFilter origin.
func (s *Stage) Point() geo.Point { return s.point }

// MaxDistance returns the GeoFilter radius in meters.
func (s *Stage) MaxDistance() float64 { return s.maxDistance }

// Cuisines returns the Score stage's requested cuisines.
func (s *Stage) Cuisines() []string { return s.cuisines }

// N returns the count parameter of Skip, Limit and MatchFilter.
func (s *Stage) N() int { return s.n }

// needsRecord reports whether the stage reads record fields or reorders by them.
func (s *Stage) needsRecord() bool {
	return s.op == OpScore || s.op == OpMatchFilter || s.op == OpSortByMatch
}

func (s *Stage) String() string {
	switch s.op {
	case OpGeoFilter:
		return fmt.Sprintf("%s(lat=%g,long=%g,max=%gm)", s.op, s.point.Latitude, s.point.Longitude, s.maxDistance)
	case OpScore:
		return fmt.Sprintf("%s(%s)", s.op, strings.Join(s.cuisines, "|"))
	case OpMatchFilter, OpSkip, OpLimit:
		return fmt.Sprintf("%s(%d)", s.op, s.n)
	default:
		return s.op.String()
	}
}
