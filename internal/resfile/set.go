package resfile

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Set is the unified record collection partitioned by sample. Samples keep
// the order in which they were first added.
type Set struct {
	order []string
	by    map[string][]Record
	n     int
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{by: map[string][]Record{}}
}

// Add appends records, partitioning them by their Sample field.
func (s *Set) Add(recs ...Record) {
	for _, r := range recs {
		if _, ok := s.by[r.Sample]; !ok {
			s.order = append(s.order, r.Sample)
		}
		s.by[r.Sample] = append(s.by[r.Sample], r)
		s.n++
	}
}

// Samples returns sample ids in first-seen order.
func (s *Set) Samples() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Records returns the records of one sample.
func (s *Set) Records(sample string) []Record { return s.by[sample] }

// Len returns the total number of records across samples.
func (s *Set) Len() int { return s.n }

// Load expands pattern, parses every matching file and returns the unified
// set. Files are visited in lexical order. A file with no data rows still
// registers its sample so it is reported with empty aggregations.
func Load(pattern, suffix string) (*Set, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expand input pattern %q: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, &InputNotFoundError{Pattern: pattern}
	}
	sort.Strings(files)
	set := NewSet()
	for _, f := range files {
		sample := SampleName(f, suffix)
		recs, err := ReadFile(f, sample)
		if err != nil {
			return nil, err
		}
		if _, ok := set.by[sample]; !ok {
			set.order = append(set.order, sample)
			set.by[sample] = nil
		}
		set.Add(recs...)
	}
	return set, nil
}

// Glob is a record source bound to an input pattern and sample suffix.
type Glob struct {
	Pattern string
	Suffix  string
}

// Load implements the pipeline source port.
func (g Glob) Load() (*Set, error) {
	pattern := g.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	suffix := g.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return Load(pattern, suffix)
}
