package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gopcr/internal/config"
	"github.com/alexiusacademia/gopcr/internal/logger"
	"github.com/alexiusacademia/gopcr/internal/version"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string

	// Environment defaults, loaded before any subcommand runs
	envConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gopcr",
	Short: "Pipe Corrosion Reliability Tool",
	Long: `gopcr - Go Pipe Corrosion Reliability

A CLI tool for the Monte Carlo reliability analysis of a corroding
hollow steel pipe section.

This tool helps structural engineers:
  - Compute hollow circular section properties
  - Sample uncertain soil, steel and corrosion parameters
  - Simulate wall loss with the power-law model k'·t^u
  - Track bending and lateral capacity over a 50-year horizon
  - Count trajectories falling below a failure threshold

Environment Variables:
  GOPCR_SEED          Random seed (default: 1)
  GOPCR_TRAJECTORIES  Number of simulated pipes (default: 1000)
  GOPCR_YEARS         Horizon length in years (default: 50)
  LOG_LEVEL           debug, info, warn, error (default: info)
  LOG_FORMAT          text, json (default: text)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		envConfig = cfg

		level, format := cfg.LogLevel, cfg.LogFormat
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			format = logFormat
		}
		logger.Init(os.Stderr, level, format)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gopcr v%-49s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Pipe Corrosion Reliability                           ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Hollow circular section properties")
		fmt.Fprintln(out, "    • Normal sampling of uncertain parameters")
		fmt.Fprintln(out, "    • Time-stepped corrosion and capacity simulation")
		fmt.Fprintln(out, "    • Percentile envelopes and failure counts")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gopcr --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text, json (overrides LOG_FORMAT)")
}
