package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/amrreport-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set amrreport configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "input_pattern: %s\n", cfg.InputPattern)
		fmt.Fprintf(w, "sample_suffix: %s\n", cfg.SampleSuffix)
		fmt.Fprintf(w, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(w, "gene_limit: %d\n", cfg.GeneLimit)
		fmt.Fprintf(w, "narrative_top: %d\n", cfg.NarrativeTop)
		fmt.Fprintf(w, "chart_enabled: %t\n", cfg.ChartEnabled)
		if cfg.ChartEnabled {
			fmt.Fprintf(w, "chart_file: %s\n", cfg.ChartFile)
			fmt.Fprintf(w, "chart_strict: %t\n", cfg.ChartStrict)
		}
		fmt.Fprintf(w, "manifest: %t\n", cfg.Manifest)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := requireConfig()
		if err != nil {
			return err
		}
		switch key {
		case "input_pattern":
			c.InputPattern = val
		case "sample_suffix":
			c.SampleSuffix = val
		case "output_dir":
			c.OutputDir = val
		case "chart_file":
			c.ChartFile = val
		case "gene_limit", "narrative_top":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			if key == "gene_limit" {
				c.GeneLimit = i
			} else {
				c.NarrativeTop = i
			}
		case "chart_enabled", "chart_strict", "manifest":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %w", key, err)
			}
			switch key {
			case "chart_enabled":
				c.ChartEnabled = b
			case "chart_strict":
				c.ChartStrict = b
			default:
				c.Manifest = b
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
