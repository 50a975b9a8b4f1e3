// Package abundance sums sequencing depth per drug class, sample and gene.
package abundance

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/amrreport-cli/internal/resfile"
)

const (
	// DefaultGeneLimit caps the per-gene table.
	DefaultGeneLimit = 20
	// DefaultNarrativeTop is how many classes and genes the summary names.
	DefaultNarrativeTop = 3
)

// ClassAbundance is the summed depth of one drug class within a sample.
type ClassAbundance struct {
	DrugClass  string
	TotalDepth float64
	Percentage float64 // of the sample total, rounded to 2 decimals
}

// SampleAbundance is the summed depth of all hits in a sample.
type SampleAbundance struct {
	Sample     string
	TotalDepth float64
}

// GeneAbundance is the summed depth of one template.
type GeneAbundance struct {
	Gene       string
	TotalDepth float64
}

// Summary bundles the three aggregations of one sample.
type Summary struct {
	Sample  string
	Classes []ClassAbundance
	Samples []SampleAbundance
	Genes   []GeneAbundance
}

// TotalDepth returns the depth of the first sample row, or 0 when empty.
func (s *Summary) TotalDepth() float64 {
	if len(s.Samples) == 0 {
		return 0
	}
	return s.Samples[0].TotalDepth
}

// MalformedTemplateError indicates a template without a drug-class segment.
type MalformedTemplateError struct {
	Template string
}

func (e *MalformedTemplateError) Error() string {
	return fmt.Sprintf("malformed template %q: expected at least 3 '|'-separated segments", e.Template)
}

// DrugClass returns the third '|' segment of a MEGARes template name.
func DrugClass(template string) (string, error) {
	parts := strings.SplitN(template, "|", 4)
	if len(parts) < 3 {
		return "", &MalformedTemplateError{Template: template}
	}
	return parts[2], nil
}

// Aggregate runs the three reductions over one sample's records.
func Aggregate(sample string, recs []resfile.Record, geneLimit int) (*Summary, error) {
	classes, err := ByDrugClass(recs)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s by drug class: %w", sample, err)
	}
	return &Summary{
		Sample:  sample,
		Classes: classes,
		Samples: BySample(recs),
		Genes:   ByGene(recs, geneLimit),
	}, nil
}

// ByDrugClass sums depth per drug class, ordered by depth descending then
// class name ascending. A zero total yields 0% for every class.
func ByDrugClass(recs []resfile.Record) ([]ClassAbundance, error) {
	sums := map[string]float64{}
	for _, r := range recs {
		class, err := DrugClass(r.Template)
		if err != nil {
			return nil, err
		}
		sums[class] += r.Depth
	}
	out := make([]ClassAbundance, 0, len(sums))
	var total float64
	for k, v := range sums {
		out = append(out, ClassAbundance{DrugClass: k, TotalDepth: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalDepth != out[j].TotalDepth {
			return out[i].TotalDepth > out[j].TotalDepth
		}
		return out[i].DrugClass < out[j].DrugClass
	})
	for _, c := range out {
		total += c.TotalDepth
	}
	if total > 0 {
		for i := range out {
			out[i].Percentage = round2(out[i].TotalDepth / total * 100)
		}
	}
	return out, nil
}

// BySample sums depth per sample. Rows are ordered by depth descending then
// sample name ascending.
func BySample(recs []resfile.Record) []SampleAbundance {
	sums := map[string]float64{}
	for _, r := range recs {
		sums[r.Sample] += r.Depth
	}
	out := make([]SampleAbundance, 0, len(sums))
	for k, v := range sums {
		out = append(out, SampleAbundance{Sample: k, TotalDepth: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalDepth != out[j].TotalDepth {
			return out[i].TotalDepth > out[j].TotalDepth
		}
		return out[i].Sample < out[j].Sample
	})
	return out
}

// ByGene sums depth per raw template string and keeps the first limit rows
// by depth descending, template ascending. limit <= 0 keeps everything.
func ByGene(recs []resfile.Record, limit int) []GeneAbundance {
	sums := map[string]float64{}
	for _, r := range recs {
		sums[r.Template] += r.Depth
	}
	out := make([]GeneAbundance, 0, len(sums))
	for k, v := range sums {
		out = append(out, GeneAbundance{Gene: k, TotalDepth: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalDepth != out[j].TotalDepth {
			return out[i].TotalDepth > out[j].TotalDepth
		}
		return out[i].Gene < out[j].Gene
	})
	return Top(out, limit)
}

// Top returns the first k rows of an already ordered slice. It never
// re-sorts; k <= 0 or k >= len(rows) returns rows unchanged.
func Top[T any](rows []T, k int) []T {
	if k <= 0 || k >= len(rows) {
		return rows
	}
	return rows[:k]
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
