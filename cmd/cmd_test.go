package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gopcr/internal/section"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := executeSplit(t, args...)
	return stdout, err
}

// executeSplit runs the root command with args and returns stdout and
// stderr separately.
func executeSplit(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{"GOPCR_SEED", "GOPCR_TRAJECTORIES", "GOPCR_YEARS", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores flag defaults so tests do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestSection_Default(t *testing.T) {
	out, err := execute(t, "section")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{"170.00 mm", "2748.89 mm²", "117018.87 mm³", "29.25 kN·m"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestSection_Corroded(t *testing.T) {
	out, err := execute(t, "section", "--remaining", "1.7")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "CORRODED SECTION") || !strings.Contains(out, "Corroded My") {
		t.Errorf("expected corroded section block, got:\n%s", out)
	}
	if !strings.Contains(out, "1.70 mm") {
		t.Errorf("expected remaining wall 1.70 mm, got:\n%s", out)
	}
}

func TestSection_RemainingOutsideWall(t *testing.T) {
	for _, remaining := range []string{"9", "-1"} {
		_, err := execute(t, "section", "--remaining="+remaining)
		if !errors.Is(err, section.ErrInvalidGeometry) {
			t.Errorf("--remaining %s: expected ErrInvalidGeometry, got %v", remaining, err)
		}
		resetFlags(rootCmd)
	}
}

func TestSection_InvalidGeometry(t *testing.T) {
	_, err := execute(t, "section", "-D", "100", "-t", "60")
	if err == nil || !strings.Contains(err.Error(), "invalid geometry") {
		t.Errorf("expected invalid geometry error, got %v", err)
	}
}

func TestSection_JSON(t *testing.T) {
	out, err := execute(t, "section", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var g map[string]float64
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatalf("expected JSON, got %q", out)
	}
	if g["inner_diameter"] != 170 {
		t.Errorf("expected inner diameter 170, got %v", g["inner_diameter"])
	}
}

func TestSample(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "sample", "-n", "200", "--seed", "4", "--plots", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Corrosion k'") {
		t.Errorf("expected parameter table, got:\n%s", out)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 {
		t.Errorf("expected 5 histograms, got %d", len(entries))
	}
}

func TestSimulate_Text(t *testing.T) {
	out, err := execute(t, "simulate", "-n", "100", "--seed", "9", "--chart")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"CAPACITY OVER TIME", "FAILURE THRESHOLD", "Failed by year 50"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestSimulate_JSONAndExports(t *testing.T) {
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "results.xlsx")
	pdf := filepath.Join(dir, "summary.pdf")

	out, notices, err := executeSplit(t, "simulate", "-n", "50", "-y", "20", "--json", "--xlsx", xlsx, "--pdf", pdf)
	if err != nil {
		t.Fatal(err)
	}

	var doc simulationOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("expected stdout to be a single JSON document, got %v", err)
	}
	for _, want := range []string{"Workbook exported to:", "PDF summary exported to:"} {
		if !strings.Contains(notices, want) {
			t.Errorf("expected stderr to contain %q, got %q", want, notices)
		}
	}
	if len(doc.Years) != 20 || len(doc.FailureCounts) != 20 {
		t.Errorf("expected 20 years, got %d", len(doc.Years))
	}
	if doc.Config.Trajectories != 50 {
		t.Errorf("expected 50 trajectories, got %d", doc.Config.Trajectories)
	}

	for _, f := range []string{xlsx, pdf} {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("expected %s to exist: %v", f, err)
		}
	}
}

func TestSimulate_EnvDefaults(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"simulate", "--json"})
	t.Setenv("GOPCR_TRAJECTORIES", "30")
	t.Setenv("GOPCR_YEARS", "10")
	t.Setenv("GOPCR_SEED", "5")
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		resetFlags(rootCmd)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	var doc simulationOutput
	if err := json.NewDecoder(&buf).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if doc.Config.Trajectories != 30 || doc.Config.LastYear != 10 || doc.Config.Seed != 5 {
		t.Errorf("expected env defaults 30/10/5, got %d/%d/%d", doc.Config.Trajectories, doc.Config.LastYear, doc.Config.Seed)
	}
}

func TestSimulate_DegenerateEnsemble(t *testing.T) {
	_, err := execute(t, "simulate", "-n", "0")
	if err == nil || !strings.Contains(err.Error(), "degenerate ensemble") {
		t.Errorf("expected degenerate ensemble error, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "gopcr v") {
		t.Errorf("unexpected version output %q", out)
	}
}
