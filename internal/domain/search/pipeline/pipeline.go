package pipeline

import (
	"math"
	"slices"
	"strings"

	"github.com/kailas-cloud/tablefinder/internal/domain"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/result"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/score"
)

// Pipeline is an immutable, ordered list of stages.
type Pipeline struct {
	stages []Stage
}

// New creates a pipeline from stages.
func New(stages ...Stage) Pipeline {
	return Pipeline{stages: slices.Clone(stages)}
}

// Stages returns a copy of the stages.
func (p Pipeline) Stages() []Stage { return slices.Clone(p.stages) }

// Len returns the number of stages.
func (p Pipeline) Len() int { return len(p.stages) }

// Source returns the leading GeoFilter stage, if any. A store with a
// geospatial index evaluates it natively and runs Rest() in-process.
func (p Pipeline) Source() (Stage, bool) {
	if len(p.stages) > 0 && p.stages[0].op == OpGeoFilter {
		return p.stages[0], true
	}
	return Stage{}, false
}

// Rest returns the pipeline without its source stage.
func (p Pipeline) Rest() Pipeline {
	if _, ok := p.Source(); ok {
		return Pipeline{stages: p.stages[1:]}
	}
	return p
}

// NeedsRecords reports whether any stage reads record fields. When false the
// pipeline can be evaluated over identifiers alone.
func (p Pipeline) NeedsRecords() bool {
	for i := range p.stages {
		if p.stages[i].needsRecord() {
			return true
		}
	}
	return false
}

// Window folds the Skip/Limit stages into one offset and limit (-1 = no
// limit). ok is false if any other non-source stage is present.
func (p Pipeline) Window() (offset, limit int, ok bool) {
	return p.window(false)
}

// CountWindow is Window for counting: Score and SortByMatch keep the number
// of candidates unchanged, so they are skipped instead of failing the fold.
func (p Pipeline) CountWindow() (offset, limit int, ok bool) {
	return p.window(true)
}

func (p Pipeline) window(countOnly bool) (offset, limit int, ok bool) {
	limit = -1
	for _, s := range p.Rest().stages {
		switch s.op {
		case OpScore, OpSortByMatch:
			if !countOnly {
				return 0, -1, false
			}
		case OpSkip:
			if limit >= 0 {
				limit = max(limit-s.n, 0)
			}
			offset += s.n
		case OpLimit:
			if limit < 0 || s.n < limit {
				limit = s.n
			}
		default:
			return 0, -1, false
		}
	}
	return offset, limit, true
}

// Validate rejects malformed pipelines. A bad GeoFilter origin yields
// invalid_geometry; every other defect yields pipeline_error.
func (p Pipeline) Validate() error {
	scored := false
	for i := range p.stages {
		s := &p.stages[i]
		switch s.op {
		case OpGeoFilter:
			if i != 0 {
				return domain.Errorf(domain.KindPipeline, "stage %d: geo filter must be the first stage", i)
			}
			if !s.point.Valid() {
				return domain.Errorf(domain.KindInvalidGeometry,
					"geo filter origin (%v, %v) is not a valid coordinate", s.point.Latitude, s.point.Longitude)
			}
			if !(s.maxDistance > 0) || math.IsInf(s.maxDistance, 0) {
				return domain.Errorf(domain.KindPipeline, "stage %d: max distance must be positive", i)
			}
		case OpScore:
			if len(s.cuisines) == 0 {
				return domain.Errorf(domain.KindPipeline, "stage %d: score requires cuisines", i)
			}
			scored = true
		case OpMatchFilter, OpSortByMatch:
			if !scored {
				return domain.Errorf(domain.KindPipeline, "stage %d: %s requires a preceding score stage", i, s.op)
			}
			if s.op == OpMatchFilter && s.n < 0 {
				return domain.Errorf(domain.KindPipeline, "stage %d: negative match threshold", i)
			}
		case OpSkip:
			if s.n < 0 {
				return domain.Errorf(domain.KindPipeline, "stage %d: negative skip", i)
			}
		case OpLimit:
			if s.n <= 0 {
				return domain.Errorf(domain.KindPipeline, "stage %d: limit must be positive", i)
			}
		default:
			return domain.Errorf(domain.KindPipeline, "stage %d: unknown operation %s", i, s.op)
		}
	}
	return nil
}

// Apply evaluates every stage in-process over cands, which must be in
// store-native order. A GeoFilter stage here computes Haversine distances.
func (p Pipeline) Apply(cands []result.Candidate) ([]result.Candidate, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := slices.Clone(cands)
	for i := range p.stages {
		out = p.stages[i].apply(out)
	}
	return out, nil
}

func (s *Stage) apply(in []result.Candidate) []result.Candidate {
	switch s.op {
	case OpGeoFilter:
		out := in[:0]
		for _, c := range in {
			r := c.Restaurant()
			d := s.point.DistanceTo(r.Location)
			if d <= s.maxDistance {
				out = append(out, c.WithDistance(d))
			}
		}
		slices.SortStableFunc(out, func(a, b result.Candidate) int {
			da, _ := a.Distance()
			db, _ := b.Distance()
			switch {
			case da < db:
				return -1
			case da > db:
				return 1
			}
			return 0
		})
		return out
	case OpScore:
		for i := range in {
			r := in[i].Restaurant()
			in[i] = in[i].WithMatchCount(score.MatchCount(s.cuisines, r.Cuisines))
		}
		return in
	case OpMatchFilter:
		out := in[:0]
		for _, c := range in {
			if n, _ := c.MatchCount(); n >= s.n {
				out = append(out, c)
			}
		}
		return out
	case OpSortByMatch:
		slices.SortStableFunc(in, func(a, b result.Candidate) int {
			ma, _ := a.MatchCount()
			mb, _ := b.MatchCount()
			return mb - ma
		})
		return in
	case OpSkip:
		if s.n >= len(in) {
			return in[:0]
		}
		return in[s.n:]
	case OpLimit:
		if s.n < len(in) {
			return in[:s.n]
		}
		return in
	}
	return in
}

func (p Pipeline) String() string {
	parts := make([]string, len(p.stages))
	for i := range p.stages {
		parts[i] = p.stages[i].String()
	}
	return "[" + strings.Join(parts, " -> ") + "]"
}
