// Package chart renders the drug-class abundance bar chart.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/amrreport-cli/internal/abundance"
)

// DefaultFileName is the chart written next to the first sample's tables.
const DefaultFileName = "drug_class_abundance_summary.png"

// ErrNoRows is returned when there is nothing to draw.
var ErrNoRows = errors.New("chart: no drug class rows")

// Renderer draws a class aggregation to path.
type Renderer interface {
	Render(rows []abundance.ClassAbundance, path string) error
}

// BarChart is a horizontal bar chart of depth per drug class. The output
// format follows the file extension of path.
type BarChart struct {
	Title string
	Color color.Color
}

// viridis midpoint
var defaultBarColor = color.RGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff}

// Render implements Renderer.
func (b BarChart) Render(rows []abundance.ClassAbundance, path string) error {
	if len(rows) == 0 {
		return ErrNoRows
	}
	p := plot.New()
	p.Title.Text = b.Title
	if p.Title.Text == "" {
		p.Title.Text = "Drug Class Abundance Summary"
	}
	p.X.Label.Text = "Total_Depth"
	p.Y.Label.Text = "Drug_Class"

	// plot the first row at the top
	n := len(rows)
	vals := make(plotter.Values, n)
	names := make([]string, n)
	for i, r := range rows {
		vals[n-1-i] = r.TotalDepth
		names[n-1-i] = r.DrugClass
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(14))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	bars.Horizontal = true
	bars.LineStyle.Width = 0
	bars.Color = b.Color
	if bars.Color == nil {
		bars.Color = defaultBarColor
	}
	p.Add(bars)
	p.NominalY(names...)

	if err := p.Save(10*vg.Inch, Height(n), path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// Height scales the figure with the number of rows, never below 4 inches.
func Height(rows int) vg.Length {
	return vg.Length(math.Max(4, 0.3*float64(rows))) * vg.Inch
}
