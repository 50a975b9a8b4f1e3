// Package report turns abundance summaries into CSV files, console tables
// and a short narrative.
package report

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/amrreport-cli/internal/abundance"
)

// Column headers of the emitted tables.
var (
	ClassHeader  = []string{"Drug_Class", "Total_Depth", "Percentage(%)"}
	SampleHeader = []string{"Sample", "Total_Depth"}
	GeneHeader   = []string{"Gene", "Total_Depth"}
)

// Table is a header plus string cells, shared by sinks and formatters.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// ClassFileName is the drug-class table written for sample.
func ClassFileName(sample string) string { return sample + "_drug_class_abundance.csv" }

// SampleFileName is the per-sample table written for sample.
func SampleFileName(sample string) string { return sample + "_sample_abundance.csv" }

// GeneFileName is the gene table written for sample. The name keeps the
// "top20" suffix whatever gene limit is configured.
func GeneFileName(sample string) string { return sample + "_gene_abundance_top20.csv" }

// ClassTable renders drug-class rows.
func ClassTable(rows []abundance.ClassAbundance) Table {
	t := Table{Title: "Drug Class Abundance Summary", Header: ClassHeader}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.DrugClass, formatNum(r.TotalDepth), formatNum(r.Percentage)})
	}
	return t
}

// SampleTable renders per-sample rows.
func SampleTable(rows []abundance.SampleAbundance) Table {
	t := Table{Title: "Per-sample AMR Abundance", Header: SampleHeader}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Sample, formatNum(r.TotalDepth)})
	}
	return t
}

// GeneTable renders per-gene rows titled with the configured limit.
func GeneTable(rows []abundance.GeneAbundance, limit int) Table {
	if limit <= 0 {
		limit = abundance.DefaultGeneLimit
	}
	t := Table{Title: fmt.Sprintf("Top %d Gene/Mechanism Abundance", limit), Header: GeneHeader}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Gene, formatNum(r.TotalDepth)})
	}
	return t
}

// formatNum uses the shortest representation that parses back to x.
func formatNum(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }
