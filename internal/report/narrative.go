package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/amrreport-cli/internal/abundance"
)

// Narrative composes the plain-text summary of one sample: total depth,
// the leading drug classes and the leading genes.
func Narrative(s *abundance.Summary, topClasses, topGenes int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Summary for sample '%s':\n", s.Sample))
	b.WriteString(fmt.Sprintf("Total AMR abundance (depth): %.2f\n", s.TotalDepth()))
	b.WriteString("Dominant drug classes detected:\n")
	for _, c := range abundance.Top(s.Classes, topClasses) {
		b.WriteString(fmt.Sprintf("  - %s (%.2f%%)\n", c.DrugClass, c.Percentage))
	}
	b.WriteString("Top detected resistance genes:\n")
	for _, g := range abundance.Top(s.Genes, topGenes) {
		b.WriteString(fmt.Sprintf("  - %s\n", g.Gene))
	}
	return b.String()
}
