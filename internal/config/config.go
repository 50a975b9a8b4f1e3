package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	InputPattern string `mapstructure:"input_pattern" yaml:"input_pattern"`
	SampleSuffix string `mapstructure:"sample_suffix" yaml:"sample_suffix"`
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir"`
	GeneLimit    int    `mapstructure:"gene_limit" yaml:"gene_limit"`
	NarrativeTop int    `mapstructure:"narrative_top" yaml:"narrative_top"`

	// Chart
	ChartEnabled bool   `mapstructure:"chart_enabled" yaml:"chart_enabled"`
	ChartFile    string `mapstructure:"chart_file" yaml:"chart_file"`
	ChartStrict  bool   `mapstructure:"chart_strict" yaml:"chart_strict"`

	Manifest bool `mapstructure:"manifest" yaml:"manifest"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.amrreport/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied on top
// by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("AMRREPORT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input_pattern", "results/*_megares.res")
	v.SetDefault("sample_suffix", "_megares.res")
	v.SetDefault("output_dir", "visualization")
	v.SetDefault("gene_limit", 20)
	v.SetDefault("narrative_top", 3)
	v.SetDefault("chart_enabled", true)
	v.SetDefault("chart_file", "drug_class_abundance_summary.png")
	v.SetDefault("chart_strict", false)
	v.SetDefault("manifest", true)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		// a missing file is fine; config set creates it
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".amrreport"), nil
}
