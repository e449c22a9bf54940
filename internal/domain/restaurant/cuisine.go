package restaurant

import "strings"

// CuisineDelimiter separates cuisine names in the source data ("Chinese, Italian").
const CuisineDelimiter = ", "

// CuisineSet is an ordered set of cuisine names. Membership is case-insensitive;
// the first spelling seen is kept for display.
type CuisineSet struct {
	names []string
	index map[string]struct{}
}

// NewCuisineSet builds a set from names, dropping blanks and duplicates.
func NewCuisineSet(names ...string) CuisineSet {
	s := CuisineSet{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := FoldCuisine(n)
		if _, ok := s.index[key]; ok {
			continue
		}
		s.index[key] = struct{}{}
		s.names = append(s.names, n)
	}
	return s
}

// ParseCuisines splits a delimited cuisine string into a set.
func ParseCuisines(raw string) CuisineSet {
	if strings.TrimSpace(raw) == "" {
		return NewCuisineSet()
	}
	return NewCuisineSet(strings.Split(raw, CuisineDelimiter)...)
}

// FoldCuisine returns the comparison key for a cuisine name.
func FoldCuisine(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Has reports whether name is a member.
func (s CuisineSet) Has(name string) bool {
	_, ok := s.index[FoldCuisine(name)]
	return ok
}

// Len returns the number of distinct cuisines.
func (s CuisineSet) Len() int { return len(s.names) }

// Names returns the cuisines in first-seen order.
func (s CuisineSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// String joins the names back into the source format.
func (s CuisineSet) String() string {
	return strings.Join(s.names, CuisineDelimiter)
}
