package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/KaramelBytes/amrreport-cli/internal/abundance"
	"github.com/KaramelBytes/amrreport-cli/internal/pipeline"
	"github.com/KaramelBytes/amrreport-cli/internal/resfile"
)

const resHeader = "#Template\tScore\tExpected\tTemplate_length\tTemplate_Identity\tTemplate_Coverage\tQuery_Identity\tQuery_Coverage\tDepth\tq_value\tp_value\n"

func resRow(template string, depth float64) string {
	return fmt.Sprintf("%s\t1200\t10\t861\t99.88\t100.00\t99.88\t100.00\t%g\t1100.00\t1.0e-26\n", template, depth)
}

// execute runs the root command with args, resetting sticky flag state
// from earlier invocations, and returns captured stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, fs := range []*pflag.FlagSet{reportCmd.Flags(), rootCmd.PersistentFlags()} {
		fs.VisitAll(func(fl *pflag.Flag) {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		})
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeRes(t *testing.T, dir, sample, body string) {
	t.Helper()
	p := filepath.Join(dir, sample+"_megares.res")
	if err := os.WriteFile(p, []byte(resHeader+body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

func TestCLI_Report_TwoSamples(t *testing.T) {
	home := isolateHome(t)
	in := filepath.Join(home, "results")
	if err := os.MkdirAll(in, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeRes(t, in, "S1",
		resRow("MEG_1|Drugs|betalactams|Class_A|BLAA", 12.5)+
			resRow("MEG_2|Drugs|betalactams|Class_A|BLAB", 7.5)+
			resRow("MEG_3|Drugs|Aminoglycosides|AAC|AAC3", 5))
	writeRes(t, in, "S2", resRow("MEG_4|Drugs|Tetracyclines|Tet|TETM", 3))
	outDir := filepath.Join(home, "visualization")

	stdout, err := execute(t, "report", filepath.Join(in, "*_megares.res"), "-o", outDir)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	for _, frag := range []string{"Processing sample: S1", "Processing sample: S2", "Total AMR abundance (depth): 25.00", "Reporting complete!"} {
		if !strings.Contains(stdout, frag) {
			t.Fatalf("expected %q in output:\n%s", frag, stdout)
		}
	}
	for _, s := range []string{"S1", "S2"} {
		for _, suffix := range []string{"_drug_class_abundance.csv", "_sample_abundance.csv", "_gene_abundance_top20.csv"} {
			if _, err := os.Stat(filepath.Join(outDir, s+suffix)); err != nil {
				t.Fatalf("missing %s%s: %v", s, suffix, err)
			}
		}
	}
	pngs, _ := filepath.Glob(filepath.Join(outDir, "*.png"))
	if len(pngs) != 1 {
		t.Fatalf("expected exactly one chart, got %v", pngs)
	}
	m, err := pipeline.ReadManifest(filepath.Join(outDir, pipeline.ManifestFileName))
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if len(m.Samples) != 2 || m.Chart == "" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	class, err := os.ReadFile(filepath.Join(outDir, "S1_drug_class_abundance.csv"))
	if err != nil {
		t.Fatalf("read class csv: %v", err)
	}
	want := "Drug_Class,Total_Depth,Percentage(%)\nbetalactams,20,80\nAminoglycosides,5,20\n"
	if string(class) != want {
		t.Fatalf("class csv mismatch:\n got %q\nwant %q", class, want)
	}
}

func TestCLI_Report_NoInput(t *testing.T) {
	home := isolateHome(t)
	outDir := filepath.Join(home, "visualization")
	_, err := execute(t, "report", "-i", filepath.Join(home, "results", "*_megares.res"), "-o", outDir, "-q")
	if err == nil {
		t.Fatalf("expected error for missing input")
	}
	if code := exitCode(err); code != exitInputNotFound {
		t.Fatalf("expected exit code %d, got %d", exitInputNotFound, code)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Fatalf("output dir should not exist, stat err=%v", err)
	}
}

func TestCLI_Report_ParseErrorExitCode(t *testing.T) {
	home := isolateHome(t)
	writeRes(t, home, "bad", "too\tfew\tfields\n")
	_, err := execute(t, "report", filepath.Join(home, "*_megares.res"), "-o", filepath.Join(home, "out"), "-q", "--no-chart")
	if code := exitCode(err); code != exitParse {
		t.Fatalf("expected exit code %d, got %d (err=%v)", exitParse, code, err)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{fmt.Errorf("load: %w", &resfile.InputNotFoundError{Pattern: "x"}), exitInputNotFound},
		{fmt.Errorf("load: %w", &resfile.ParseError{File: "f", Msg: "m"}), exitParse},
		{fmt.Errorf("aggregate: %w", &abundance.MalformedTemplateError{Template: "t"}), exitMalformedTemplate},
		{fmt.Errorf("other"), exitError},
	}
	for _, c := range cases {
		if got := exitCode(c.err); got != c.want {
			t.Fatalf("exitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	isolateHome(t)
	if _, err := execute(t, "config", "set", "output_dir", "plots"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "output_dir: plots") {
		t.Fatalf("expected saved output_dir, got:\n%s", out)
	}
	if _, err := execute(t, "config", "set", "gene_limit", "zero"); err == nil {
		t.Fatalf("expected invalid gene_limit to fail")
	}
}

func TestCLI_ConfigSetCreatesNamedFile(t *testing.T) {
	home := isolateHome(t)
	path := filepath.Join(home, "new.yaml")
	if _, err := execute(t, "--config", path, "config", "set", "gene_limit", "5"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "gene_limit: 5") {
		t.Fatalf("expected gene_limit from new file, got:\n%s", out)
	}
}
