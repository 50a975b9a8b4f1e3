package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/amrreport-cli/internal/utils"
)

// ManifestFileName is written into the output directory after a run.
const ManifestFileName = "run_manifest.yaml"

// Result describes one completed run.
type Result struct {
	RunID      string         `yaml:"run_id"`
	StartedAt  time.Time      `yaml:"started_at"`
	Input      string         `yaml:"input_pattern,omitempty"`
	OutputDir  string         `yaml:"output_dir"`
	Samples    []SampleResult `yaml:"samples"`
	Chart      string         `yaml:"chart,omitempty"`
	ChartError string         `yaml:"chart_error,omitempty"`
}

// SampleResult lists what was produced for one sample.
type SampleResult struct {
	Sample     string   `yaml:"sample"`
	Records    int      `yaml:"records"`
	TotalDepth float64  `yaml:"total_depth"`
	Files      []string `yaml:"files"`
}

// Artifacts returns every file path recorded in the result.
func (r *Result) Artifacts() []string {
	var out []string
	for _, s := range r.Samples {
		out = append(out, s.Files...)
	}
	if r.Chart != "" {
		out = append(out, r.Chart)
	}
	return out
}

// WriteManifest serializes res as YAML into dir and returns the path.
func WriteManifest(dir string, res *Result) (string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	b, err := yaml.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFileName)
	if err := utils.SafeWriteFile(path, b); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var res Result
	if err := yaml.Unmarshal(b, &res); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &res, nil
}
