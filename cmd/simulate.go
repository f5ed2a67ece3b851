package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/alexiusacademia/gopcr/internal/aggregate"
	"github.com/alexiusacademia/gopcr/internal/analysis"
	"github.com/alexiusacademia/gopcr/internal/diagram"
	"github.com/alexiusacademia/gopcr/internal/report"
	"github.com/alexiusacademia/gopcr/internal/sampler"
	"github.com/alexiusacademia/gopcr/internal/section"
	"github.com/spf13/cobra"
)

var (
	simDiameter     float64
	simThickness    float64
	simTrajectories int
	simYears        int
	simSeed         uint64
	simYield        float64
	simSampledYield bool
	simUnitForce    float64
	simFailureRatio float64

	// Output options
	simEvery int
	simChart bool
	simJSON  bool
	simPlots string
	simXLSX  string
	simPDF   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the Monte Carlo corrosion reliability analysis",
	Long: `Simulate wall loss and capacity degradation of a corroding pipe.

For every trajectory i and year t:
  loss       = k'ᵢ · t^uᵢ
  remaining  = max(t_wall - loss, 0)
  S(t)       = π(D⁴ - d(t)⁴) / (32 D)
  M(t)       = fy · S(t)                    (kN·m)
  H(t)       = F · π(D² - d(t)²) / 4        (kN, F = unit lateral force)

The failure threshold is a fraction (default 70%) of the first-year
mean bending capacity; the number of trajectories below it is
reported every year.

Examples:
  # Nominal analysis: 180x5 mm pipe, 1000 trajectories, 50 years
  gopcr simulate

  # Reproducible run with terminal charts and exported figures
  gopcr simulate --seed 42 --chart --plots out/

  # Use each trajectory's sampled yield strength
  gopcr simulate --sampled-yield --xlsx results.xlsx --pdf summary.pdf`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	defaults := analysis.DefaultConfig()

	// Geometry flags
	simulateCmd.Flags().Float64VarP(&simDiameter, "diameter", "D", defaults.OuterDiameter, "Outer diameter (mm)")
	simulateCmd.Flags().Float64VarP(&simThickness, "thickness", "t", defaults.WallThickness, "Wall thickness (mm)")

	// Simulation flags
	simulateCmd.Flags().IntVarP(&simTrajectories, "trajectories", "n", defaults.Trajectories, "Number of simulated pipes (overrides GOPCR_TRAJECTORIES)")
	simulateCmd.Flags().IntVarP(&simYears, "years", "y", defaults.LastYear, "Horizon length in years (overrides GOPCR_YEARS)")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", defaults.Seed, "Random seed (overrides GOPCR_SEED)")

	// Capacity model flags
	simulateCmd.Flags().Float64Var(&simYield, "fy", defaults.YieldStrength, "Nominal steel yield strength (MPa)")
	simulateCmd.Flags().BoolVar(&simSampledYield, "sampled-yield", false, "Use each trajectory's sampled yield strength")
	simulateCmd.Flags().Float64Var(&simUnitForce, "unit-force", defaults.UnitLateralForce, "Unit lateral force (kN)")
	simulateCmd.Flags().Float64Var(&simFailureRatio, "failure-ratio", defaults.FailureRatio, "Failure threshold as a fraction of first-year mean bending capacity")

	// Output flags
	simulateCmd.Flags().IntVar(&simEvery, "every", 5, "Print every N-th year in the yearly table")
	simulateCmd.Flags().BoolVar(&simChart, "chart", false, "Show ASCII charts of the capacity envelopes")
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "Output JSON instead of human-readable text")
	simulateCmd.Flags().StringVar(&simPlots, "plots", "", "Directory for exported figures (PNG)")
	simulateCmd.Flags().StringVar(&simXLSX, "xlsx", "", "Export yearly results to an Excel workbook")
	simulateCmd.Flags().StringVar(&simPDF, "pdf", "", "Export a PDF summary")
}

// simulationConfig merges flags over environment defaults.
func simulationConfig(cmd *cobra.Command) analysis.Config {
	cfg := analysis.DefaultConfig()
	cfg.OuterDiameter = simDiameter
	cfg.WallThickness = simThickness
	cfg.Trajectories = simTrajectories
	cfg.LastYear = simYears
	cfg.Seed = simSeed
	cfg.YieldStrength = simYield
	cfg.SampledYield = simSampledYield
	cfg.UnitLateralForce = simUnitForce
	cfg.FailureRatio = simFailureRatio

	if envConfig != nil {
		if !cmd.Flags().Changed("trajectories") {
			cfg.Trajectories = envConfig.Trajectories
		}
		if !cmd.Flags().Changed("years") {
			cfg.LastYear = envConfig.Years
		}
		if !cmd.Flags().Changed("seed") {
			cfg.Seed = envConfig.Seed
		}
	}
	return cfg
}

type simulationOutput struct {
	Config           analysis.Config  `json:"config"`
	Geometry         section.Geometry `json:"geometry"`
	StaticBending    sampler.Summary  `json:"static_bending"`
	Years            []int            `json:"years"`
	BendingBand      aggregate.Band   `json:"bending"`
	LateralBand      aggregate.Band   `json:"lateral"`
	FailureThreshold float64          `json:"failure_threshold"`
	FailureCounts    []int            `json:"failure_counts"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg := simulationConfig(cmd)

	result, err := analysis.Run(cfg)
	if err != nil {
		return err
	}

	out, notices := cmd.OutOrStdout(), cmd.OutOrStdout()
	if simJSON {
		// keep stdout a single JSON document
		notices = cmd.ErrOrStderr()
		if err := writeJSON(out, simulationOutput{
			Config:           result.Config,
			Geometry:         result.Geometry,
			StaticBending:    result.StaticBendingSummary,
			Years:            result.Series.Years,
			BendingBand:      result.BendingBand,
			LateralBand:      result.LateralBand,
			FailureThreshold: result.Failures.Threshold,
			FailureCounts:    result.Failures.Counts,
		}); err != nil {
			return err
		}
	} else {
		printSimulation(out, result)
	}

	return exportSimulation(notices, result)
}

func printSimulation(out io.Writer, r *analysis.Result) {
	cfg := r.Config
	printBanner(out, "PIPE CORROSION RELIABILITY - MONTE CARLO")

	printHeading(out, "Input data")
	w := newTable(out)
	fmt.Fprintf(w, "  Outer diameter (D):\t%.1f mm\n", cfg.OuterDiameter)
	fmt.Fprintf(w, "  Wall thickness (t):\t%.2f mm\n", cfg.WallThickness)
	fmt.Fprintf(w, "  Trajectories:\t%d\n", cfg.Trajectories)
	fmt.Fprintf(w, "  Years:\t1..%d\n", cfg.LastYear)
	fmt.Fprintf(w, "  Seed:\t%d\n", cfg.Seed)
	if cfg.SampledYield {
		fmt.Fprintf(w, "  Yield strength:\tsampled per trajectory\n")
	} else {
		fmt.Fprintf(w, "  Yield strength:\t%.1f MPa (nominal)\n", cfg.YieldStrength)
	}
	fmt.Fprintf(w, "  Unit lateral force:\t%.2f kN\n", cfg.UnitLateralForce)
	w.Flush()
	fmt.Fprintln(out)

	g := r.Geometry
	printHeading(out, "Section properties")
	w = newTable(out)
	fmt.Fprintf(w, "  Cross-sectional area:\t%.2f mm²\n", g.Area)
	fmt.Fprintf(w, "  Moment of inertia:\t%.2f mm⁴\n", g.MomentOfInertia)
	fmt.Fprintf(w, "  Section modulus:\t%.2f mm³\n", g.SectionModulus)
	w.Flush()
	fmt.Fprintln(out)

	printHeading(out, "Sampled parameters")
	w = newTable(out)
	fmt.Fprintf(w, "  Parameter\tMean\tCOV\tSample mean\tSample σ\n")
	fmt.Fprintf(w, "  ─────────\t────\t───\t───────────\t────────\n")
	for _, e := range r.Parameters.All() {
		d, s := e.Distribution, e.Summary()
		fmt.Fprintf(w, "  %s\t%.3f\t%.2f\t%.3f\t%.3f\n", d.Name, d.Mean, d.COV, s.Mean, s.StdDev)
	}
	w.Flush()
	fmt.Fprintln(out)

	s := r.StaticBendingSummary
	printHeading(out, "Static bending capacity")
	w = newTable(out)
	fmt.Fprintf(w, "  Mean:\t%.2f kN·m\n", s.Mean)
	fmt.Fprintf(w, "  Std dev:\t%.2f kN·m\n", s.StdDev)
	fmt.Fprintf(w, "  Range:\t%.2f .. %.2f kN·m\n", s.Min, s.Max)
	w.Flush()
	fmt.Fprintln(out)

	printHeading(out, "Capacity over time")
	w = newTable(out)
	fmt.Fprintf(w, "  Year\tM mean\tM 2.5%%\tM 97.5%%\tH mean\tH 2.5%%\tH 97.5%%\tFailures\n")
	fmt.Fprintf(w, "  ────\t──────\t──────\t───────\t──────\t──────\t───────\t────────\n")
	b, l := r.BendingBand, r.LateralBand
	last := len(r.Series.Years) - 1
	for j, year := range r.Series.Years {
		if simEvery > 1 && j != 0 && j != last && year%simEvery != 0 {
			continue
		}
		fmt.Fprintf(w, "  %d\t%.3f\t%.3f\t%.3f\t%.6f\t%.6f\t%.6f\t%d\n",
			year, b.Mean[j], b.Lower[j], b.Upper[j], l.Mean[j], l.Lower[j], l.Upper[j], r.Failures.Counts[j])
	}
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  M: bending capacity (kN·m)   H: lateral capacity (kN)")
	fmt.Fprintln(out)

	if simChart {
		fmt.Fprintln(out, diagram.ASCIIBand(b, "Bending capacity over time (kN·m)"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, diagram.ASCIIBand(l, "Lateral capacity over time (kN)"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, diagram.ASCIICounts(r.Failures.Counts, "Samples below threshold"))
		fmt.Fprintln(out)
	}

	lines := []string{
		fmt.Sprintf("Threshold = %.0f%% × %.3f = %.3f kN·m", 100*cfg.FailureRatio, b.Mean[0], r.Failures.Threshold),
	}
	if year, ok := r.FirstFailureYear(); ok {
		lines = append(lines, fmt.Sprintf("First failure in year %d", year))
	} else {
		lines = append(lines, "No failures within the horizon")
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("FAILURE THRESHOLD", lines))
	fmt.Fprintln(out)

	printHeading(out, "Status")
	fmt.Fprintf(out, "  Failed by year %d: %s\n", r.Series.Years[last], failureStatus(r.Failures.Counts[last], cfg.Trajectories))
	fmt.Fprintln(out)
}

func exportSimulation(out io.Writer, r *analysis.Result) error {
	var figures []string

	if simPlots != "" {
		files, err := diagram.ExportHistograms(r.Parameters, simPlots)
		if err != nil {
			return fmt.Errorf("exporting histograms: %w", err)
		}
		figures = append(figures, files...)

		static := filepath.Join(simPlots, "static-bending.png")
		title := fmt.Sprintf("Bending Capacity (Mean = %.2f kN·m, Std Dev = %.2f kN·m)",
			r.StaticBendingSummary.Mean, r.StaticBendingSummary.StdDev)
		if err := diagram.ExportHistogram(r.StaticBending, title, "Bending Capacity (kN·m)", static); err != nil {
			return fmt.Errorf("exporting static bending histogram: %w", err)
		}

		bending := filepath.Join(simPlots, "bending-capacity.png")
		if err := diagram.ExportBand(r.Series.Bending, r.BendingBand, r.Series.Years,
			"Bending Capacity Over Time with Corrosion Effects", "Bending Capacity (kN·m)",
			diagram.BendingStyle, bending); err != nil {
			return fmt.Errorf("exporting bending plot: %w", err)
		}

		lateral := filepath.Join(simPlots, "lateral-capacity.png")
		if err := diagram.ExportBand(r.Series.Lateral, r.LateralBand, r.Series.Years,
			"Lateral Capacity Over Time with Corrosion Effects", "Lateral Capacity (kN)",
			diagram.LateralStyle, lateral); err != nil {
			return fmt.Errorf("exporting lateral plot: %w", err)
		}

		failures := filepath.Join(simPlots, "failures.png")
		if err := diagram.ExportFailures(r.Series.Years, r.Failures.Counts, failures); err != nil {
			return fmt.Errorf("exporting failure plot: %w", err)
		}

		figures = append(figures, static, bending, lateral, failures)
		for _, f := range figures {
			fmt.Fprintf(out, "Figure exported to: %s\n", f)
		}
	}

	if simXLSX != "" {
		if err := report.WriteWorkbook(r, simXLSX); err != nil {
			return fmt.Errorf("exporting workbook: %w", err)
		}
		fmt.Fprintf(out, "Workbook exported to: %s\n", simXLSX)
	}

	if simPDF != "" {
		if err := report.WritePDF(r, simPDF, figures...); err != nil {
			return fmt.Errorf("exporting PDF: %w", err)
		}
		fmt.Fprintf(out, "PDF summary exported to: %s\n", simPDF)
	}
	return nil
}
