package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/amrreport-cli/internal/chart"
	"github.com/KaramelBytes/amrreport-cli/internal/pipeline"
	"github.com/KaramelBytes/amrreport-cli/internal/report"
	"github.com/KaramelBytes/amrreport-cli/internal/resfile"
)

var (
	repInput       string
	repSuffix      string
	repOutDir      string
	repGeneLimit   int
	repTop         int
	repNoChart     bool
	repStrictChart bool
	repNoManifest  bool
	repQuiet       bool
)

var reportCmd = &cobra.Command{
	Use:   "report [pattern]",
	Short: "Aggregate .res files and write per-sample abundance reports",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		// Flags override config
		g := *c
		f := cmd.Flags()
		if f.Changed("input") {
			g.InputPattern = repInput
		}
		if len(args) == 1 {
			g.InputPattern = args[0]
		}
		if f.Changed("suffix") {
			g.SampleSuffix = repSuffix
		}
		if f.Changed("outdir") {
			g.OutputDir = repOutDir
		}
		if f.Changed("gene-limit") {
			if repGeneLimit <= 0 {
				return fmt.Errorf("invalid --gene-limit: %d (must be > 0)", repGeneLimit)
			}
			g.GeneLimit = repGeneLimit
		}
		if f.Changed("top") {
			if repTop <= 0 {
				return fmt.Errorf("invalid --top: %d (must be > 0)", repTop)
			}
			g.NarrativeTop = repTop
		}
		if repNoChart {
			g.ChartEnabled = false
		}
		if repStrictChart {
			g.ChartStrict = true
		}
		if repNoManifest {
			g.Manifest = false
		}

		var out io.Writer = cmd.OutOrStdout()
		if repQuiet {
			out = nil
		}
		r := &pipeline.Runner{
			Source: resfile.Glob{Pattern: g.InputPattern, Suffix: g.SampleSuffix},
			Emitter: &report.Emitter{
				Sink:       report.NewCSVDir(g.OutputDir),
				Formatter:  report.BoxFormatter{},
				Out:        out,
				TopClasses: g.NarrativeTop,
				TopGenes:   g.NarrativeTop,
				GeneLimit:  g.GeneLimit,
			},
			Out:    out,
			Logger: logger,
			Options: pipeline.Options{
				OutputDir:    g.OutputDir,
				InputPattern: g.InputPattern,
				GeneLimit:    g.GeneLimit,
				ChartFile:    g.ChartFile,
				StrictChart:  g.ChartStrict,
				Manifest:     g.Manifest,
			},
		}
		if g.ChartEnabled {
			r.Chart = chart.BarChart{}
		}
		res, err := r.Run()
		if err != nil {
			return err
		}
		if !repQuiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d files for %d samples to %s\n", len(res.Artifacts()), len(res.Samples), g.OutputDir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&repInput, "input", "i", resfile.DefaultPattern, "glob pattern of .res files (overrides config)")
	reportCmd.Flags().StringVar(&repSuffix, "suffix", resfile.DefaultSuffix, "file name suffix stripped to derive the sample id")
	reportCmd.Flags().StringVarP(&repOutDir, "outdir", "o", "visualization", "output directory for CSVs, chart and manifest")
	reportCmd.Flags().IntVar(&repGeneLimit, "gene-limit", 20, "number of genes kept in the gene table (file name keeps the _top20 suffix)")
	reportCmd.Flags().IntVar(&repTop, "top", 3, "number of drug classes and genes named in the summary")
	reportCmd.Flags().BoolVar(&repNoChart, "no-chart", false, "skip the drug class chart")
	reportCmd.Flags().BoolVar(&repStrictChart, "strict-chart", false, "fail the run if the chart cannot be rendered")
	reportCmd.Flags().BoolVar(&repNoManifest, "no-manifest", false, "do not write run_manifest.yaml")
	reportCmd.Flags().BoolVarP(&repQuiet, "quiet", "q", false, "suppress tables and progress output")
}
