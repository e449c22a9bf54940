package pipeline

import (
	"slices"

	"github.com/kailas-cloud/tablefinder/internal/domain/search/query"
)

// MaxDistanceMeters bounds every proximity search. It is not a request parameter.
const MaxDistanceMeters = 10_000.0

// Builder turns a Descriptor into its count and page pipelines.
type Builder struct {
	includeZeroMatches bool
}

// NewBuilder creates a Builder. With includeZeroMatches=false a
// MatchFilter(1) stage joins the shared prefix.
func NewBuilder(includeZeroMatches bool) *Builder {
	return &Builder{includeZeroMatches: includeZeroMatches}
}

// Build returns the count pipeline (shared prefix only) and the page
// pipeline (shared prefix, optional sort, skip, limit). Both are derived from
// a single prefix so they always evaluate the same candidate set.
func (b *Builder) Build(d query.Descriptor) (count, page Pipeline) {
	prefix := b.prefix(d)
	return withSuffix(prefix), withSuffix(prefix, pageSuffix(d)...)
}

// prefix returns the filter and score stages shared by both passes.
func (b *Builder) prefix(d query.Descriptor) []Stage {
	var stages []Stage
	if p := d.Point(); p != nil {
		stages = append(stages, GeoFilter(*p, MaxDistanceMeters))
	}
	if d.HasCuisines() {
		stages = append(stages, Score(d.Cuisines()))
		if !b.includeZeroMatches {
			stages = append(stages, MatchFilter(1))
		}
	}
	return stages
}

// pageSuffix returns the ordering and pagination stages of the page pass.
// Without cuisines no sort is added: order stays distance-ascending (ties
// store-defined) or store-native.
func pageSuffix(d query.Descriptor) []Stage {
	var stages []Stage
	if d.HasCuisines() {
		stages = append(stages, SortByMatchDesc())
	}
	return append(stages, Skip(d.Offset()), Limit(d.Limit()))
}

func withSuffix(prefix []Stage, suffix ...Stage) Pipeline {
	stages := slices.Clip(slices.Clone(prefix))
	return Pipeline{stages: append(stages, suffix...)}
}
