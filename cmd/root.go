package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KaramelBytes/amrreport-cli/internal/abundance"
	cfgpkg "github.com/KaramelBytes/amrreport-cli/internal/config"
	"github.com/KaramelBytes/amrreport-cli/internal/resfile"
)

// Process exit codes.
const (
	exitOK = iota
	exitError
	exitInputNotFound
	exitParse
	exitMalformedTemplate
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "amrreport",
	Short:         "Summarize AMR gene detection results by drug class, sample and gene",
	Long:          `amrreport reads KMA .res files aligned against MEGARes, sums sequencing depth per drug class, sample and gene, and writes CSV tables, console reports and a drug class bar chart.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.amrreport/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal here; commands that need config reload and report it.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c
}

// requireConfig returns the loaded config, loading it if startup failed.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	var nf *resfile.InputNotFoundError
	var pe *resfile.ParseError
	var mt *abundance.MalformedTemplateError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &nf):
		return exitInputNotFound
	case errors.As(err, &pe):
		return exitParse
	case errors.As(err, &mt):
		return exitMalformedTemplate
	default:
		return exitError
	}
}
