package report

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/amrreport-cli/internal/abundance"
)

// Emitter writes one sample's tables to a sink and prints them.
type Emitter struct {
	Sink       TableSink
	Formatter  TableFormatter
	Out        io.Writer // nil disables console output
	TopClasses int
	TopGenes   int
	GeneLimit  int // only used in the gene table title
}

// Emit writes the class, sample and gene tables, then prints them followed
// by the narrative. It returns the table names in write order.
func (e *Emitter) Emit(s *abundance.Summary) ([]string, error) {
	tables := []struct {
		name string
		t    Table
	}{
		{ClassFileName(s.Sample), ClassTable(s.Classes)},
		{SampleFileName(s.Sample), SampleTable(s.Samples)},
		{GeneFileName(s.Sample), GeneTable(s.Genes, e.GeneLimit)},
	}
	names := make([]string, 0, len(tables))
	for _, x := range tables {
		if err := e.Sink.WriteTable(x.name, x.t); err != nil {
			return names, err
		}
		names = append(names, x.name)
	}
	if e.Out == nil {
		return names, nil
	}
	f := e.Formatter
	if f == nil {
		f = BoxFormatter{}
	}
	for _, x := range tables {
		if _, err := fmt.Fprintf(e.Out, "\n📊 %s:\n%s\n", x.t.Title, f.Format(x.t)); err != nil {
			return names, err
		}
	}
	topC, topG := e.TopClasses, e.TopGenes
	if topC <= 0 {
		topC = abundance.DefaultNarrativeTop
	}
	if topG <= 0 {
		topG = abundance.DefaultNarrativeTop
	}
	if _, err := fmt.Fprintf(e.Out, "\n%s", Narrative(s, topC, topG)); err != nil {
		return names, err
	}
	return names, nil
}
