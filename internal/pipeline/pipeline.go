package pipeline

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/amrreport-cli/internal/abundance"
	"github.com/KaramelBytes/amrreport-cli/internal/chart"
	"github.com/KaramelBytes/amrreport-cli/internal/report"
	"github.com/KaramelBytes/amrreport-cli/internal/resfile"
	"github.com/KaramelBytes/amrreport-cli/internal/utils"
)

// Source yields the unified record set.
type Source interface {
	Load() (*resfile.Set, error)
}

// Options controls one run.
type Options struct {
	OutputDir    string
	InputPattern string // recorded in the manifest only
	GeneLimit    int
	ChartFile    string
	// StrictChart turns a chart failure into a run failure.
	StrictChart bool
	// Manifest writes run_manifest.yaml into OutputDir after the last sample.
	Manifest bool
}

// Runner wires the source, emitter and chart renderer together.
type Runner struct {
	Source  Source
	Emitter *report.Emitter
	Chart   chart.Renderer // nil disables the chart
	Out     io.Writer      // nil suppresses banners
	Logger  *zap.Logger
	Options Options
}

var banner = strings.Repeat("=", 60)

// Run processes every sample and returns what was produced.
func (r *Runner) Run() (*Result, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	opt := r.Options
	if opt.GeneLimit <= 0 {
		opt.GeneLimit = abundance.DefaultGeneLimit
	}
	if opt.ChartFile == "" {
		opt.ChartFile = chart.DefaultFileName
	}
	res := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Input:     opt.InputPattern,
		OutputDir: opt.OutputDir,
	}
	log = log.With(zap.String("run_id", res.RunID))

	r.printf("Parsing .res files...\n")
	set, err := r.Source.Load()
	if err != nil {
		return nil, err
	}
	log.Info("records loaded", zap.Int("records", set.Len()), zap.Int("samples", len(set.Samples())))

	chartDone := false
	for _, sample := range set.Samples() {
		r.printf("\n%s\n🔬 Processing sample: %s\n%s\n", banner, sample, banner)
		recs := set.Records(sample)
		sum, err := abundance.Aggregate(sample, recs, opt.GeneLimit)
		if err != nil {
			return res, err
		}
		names, err := r.Emitter.Emit(sum)
		if err != nil {
			return res, fmt.Errorf("emit %s: %w", sample, err)
		}
		files := make([]string, len(names))
		for i, n := range names {
			files[i] = filepath.Join(opt.OutputDir, n)
		}
		res.Samples = append(res.Samples, SampleResult{
			Sample:     sample,
			Records:    len(recs),
			TotalDepth: sum.TotalDepth(),
			Files:      files,
		})
		log.Debug("sample emitted",
			zap.String("sample", sample),
			zap.Int("records", len(recs)),
			zap.Int("classes", len(sum.Classes)),
			zap.Float64("total_depth", sum.TotalDepth()))

		if chartDone || r.Chart == nil {
			continue
		}
		chartDone = true
		path := filepath.Join(opt.OutputDir, opt.ChartFile)
		if err := r.renderChart(sum.Classes, path); err != nil {
			if opt.StrictChart {
				return res, fmt.Errorf("render chart for %s: %w", sample, err)
			}
			log.Warn("chart skipped", zap.String("sample", sample), zap.Error(err))
			r.printf("⚠ Warning: chart not rendered: %v\n", err)
			res.ChartError = err.Error()
			continue
		}
		res.Chart = path
		log.Debug("chart rendered", zap.String("path", path))
	}

	r.printf("\n%s\n🎉 Reporting complete!\n👉 Check '%s/' for CSVs and plots.\n%s\n", banner, opt.OutputDir, banner)

	if opt.Manifest {
		path, err := WriteManifest(opt.OutputDir, res)
		if err != nil {
			return res, err
		}
		log.Debug("manifest written", zap.String("path", path))
	}
	return res, nil
}

func (r *Runner) renderChart(rows []abundance.ClassAbundance, path string) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	err := r.Chart.Render(rows, path)
	if errors.Is(err, chart.ErrNoRows) {
		return fmt.Errorf("sample has no drug class rows: %w", err)
	}
	return err
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out == nil {
		return
	}
	fmt.Fprintf(r.Out, format, args...)
}
