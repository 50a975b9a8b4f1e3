package abundance

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KaramelBytes/amrreport-cli/internal/resfile"
)

func rec(sample, template string, depth float64) resfile.Record {
	return resfile.Record{Sample: sample, Template: template, Depth: depth}
}

func TestAggregate_WorkedExample(t *testing.T) {
	recs := []resfile.Record{
		rec("S1", "geneA|x|BETA-LACTAM|desc", 12.5),
		rec("S1", "geneB|y|BETA-LACTAM|desc", 7.5),
		rec("S1", "geneC|z|AMINOGLYCOSIDE|desc", 5.0),
	}
	got, err := Aggregate("S1", recs, DefaultGeneLimit)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	want := &Summary{
		Sample: "S1",
		Classes: []ClassAbundance{
			{DrugClass: "BETA-LACTAM", TotalDepth: 20, Percentage: 80},
			{DrugClass: "AMINOGLYCOSIDE", TotalDepth: 5, Percentage: 20},
		},
		Samples: []SampleAbundance{{Sample: "S1", TotalDepth: 25}},
		Genes: []GeneAbundance{
			{Gene: "geneA|x|BETA-LACTAM|desc", TotalDepth: 12.5},
			{Gene: "geneB|y|BETA-LACTAM|desc", TotalDepth: 7.5},
			{Gene: "geneC|z|AMINOGLYCOSIDE|desc", TotalDepth: 5},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if got.TotalDepth() != 25 {
		t.Fatalf("expected total 25, got %v", got.TotalDepth())
	}
}

func TestByDrugClass_TieBreakAndPercentages(t *testing.T) {
	recs := []resfile.Record{
		rec("S", "g1|a|TETRACYCLINES|x", 1),
		rec("S", "g2|a|AMINOGLYCOSIDES|x", 1),
		rec("S", "g3|a|MLS|x", 1),
	}
	got, err := ByDrugClass(recs)
	if err != nil {
		t.Fatalf("by class: %v", err)
	}
	names := []string{got[0].DrugClass, got[1].DrugClass, got[2].DrugClass}
	if diff := cmp.Diff([]string{"AMINOGLYCOSIDES", "MLS", "TETRACYCLINES"}, names); diff != "" {
		t.Fatalf("tie-break order mismatch (-want +got):\n%s", diff)
	}
	var sum float64
	for _, c := range got {
		if c.Percentage != 33.33 {
			t.Fatalf("expected 33.33%%, got %v", c.Percentage)
		}
		sum += c.Percentage
	}
	if math.Abs(sum-100) > 0.01+1e-9 {
		t.Fatalf("percentages sum to %v", sum)
	}
}

func TestByDrugClass_ZeroDepth(t *testing.T) {
	got, err := ByDrugClass([]resfile.Record{rec("S", "g|a|MLS|x", 0)})
	if err != nil {
		t.Fatalf("by class: %v", err)
	}
	if len(got) != 1 || got[0].Percentage != 0 || math.IsNaN(got[0].Percentage) {
		t.Fatalf("expected a single 0%% row, got %+v", got)
	}
}

func TestByDrugClass_MalformedTemplate(t *testing.T) {
	_, err := Aggregate("S", []resfile.Record{rec("S", "noclass|here", 1)}, DefaultGeneLimit)
	var mt *MalformedTemplateError
	if !errors.As(err, &mt) {
		t.Fatalf("expected MalformedTemplateError, got %v", err)
	}
	if mt.Template != "noclass|here" {
		t.Fatalf("unexpected template in error: %q", mt.Template)
	}
}

func TestByGene_LimitAndOrder(t *testing.T) {
	var recs []resfile.Record
	for i := 0; i < 30; i++ {
		recs = append(recs, rec("S", fmt.Sprintf("gene%02d|a|MLS|x", i), float64(i%10)))
	}
	// duplicate template alignments are summed, not deduplicated
	recs = append(recs, rec("S", "gene00|a|MLS|x", 100))
	got := ByGene(recs, DefaultGeneLimit)
	if len(got) != DefaultGeneLimit {
		t.Fatalf("expected %d genes, got %d", DefaultGeneLimit, len(got))
	}
	if got[0].Gene != "gene00|a|MLS|x" || got[0].TotalDepth != 100 {
		t.Fatalf("expected summed duplicate first, got %+v", got[0])
	}
	for i := 1; i < len(got); i++ {
		a, b := got[i-1], got[i]
		if a.TotalDepth < b.TotalDepth || (a.TotalDepth == b.TotalDepth && a.Gene >= b.Gene) {
			t.Fatalf("rows %d,%d out of order: %+v %+v", i-1, i, a, b)
		}
	}
}

func TestBySample_OneRowPerSample(t *testing.T) {
	got := BySample([]resfile.Record{rec("S1", "a|b|C", 2), rec("S1", "a|b|C", 3)})
	if diff := cmp.Diff([]SampleAbundance{{Sample: "S1", TotalDepth: 5}}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_EmptyPartition(t *testing.T) {
	got, err := Aggregate("S0", nil, DefaultGeneLimit)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(got.Classes) != 0 || len(got.Samples) != 0 || len(got.Genes) != 0 {
		t.Fatalf("expected empty aggregations, got %+v", got)
	}
	if got.TotalDepth() != 0 {
		t.Fatalf("expected zero total")
	}
}

func TestTop(t *testing.T) {
	rows := []int{5, 4, 3, 2, 1}
	if diff := cmp.Diff([]int{5, 4, 3}, Top(rows, 3)); diff != "" {
		t.Fatalf("top 3 (-want +got):\n%s", diff)
	}
	if len(Top(rows, 0)) != 5 || len(Top(rows, 10)) != 5 {
		t.Fatalf("expected all rows for k<=0 or k>=len")
	}
}

// Each class is rounded on its own, so many equal classes can drift past
// 100.00 by a few hundredths.
func TestByDrugClass_RoundsEachClassIndependently(t *testing.T) {
	var recs []resfile.Record
	for i := 0; i < 7; i++ {
		recs = append(recs, rec("S", fmt.Sprintf("g%d|a|CLASS%d|x", i, i), 1))
	}
	got, err := ByDrugClass(recs)
	if err != nil {
		t.Fatalf("by class: %v", err)
	}
	var sum float64
	for _, c := range got {
		if c.Percentage != 14.29 {
			t.Fatalf("expected 14.29%% for %s, got %v", c.DrugClass, c.Percentage)
		}
		sum += c.Percentage
	}
	if math.Abs(sum-100.03) > 1e-9 {
		t.Fatalf("expected percentages to sum to 100.03, got %v", sum)
	}
}
