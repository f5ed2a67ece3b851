package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gopcr/internal/aggregate"
	"github.com/alexiusacademia/gopcr/internal/sampler"
)

func testBand(t *testing.T) (*mat.Dense, aggregate.Band, []int) {
	t.Helper()
	m := mat.NewDense(3, 4, []float64{
		10, 9, 8, 7,
		11, 10, 8, 6,
		12, 9, 7, 5,
	})
	b, err := aggregate.Summarize(m)
	if err != nil {
		t.Fatal(err)
	}
	return m, b, []int{1, 2, 3, 4}
}

func assertFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
	if info.Size() == 0 {
		t.Errorf("expected %s to be non-empty", path)
	}
}

func TestExportHistograms(t *testing.T) {
	dists := []sampler.Distribution{
		{Name: "Soil Density", Unit: "kN/m³", Mean: 19.5, COV: 0.1},
		{Name: "Corrosion k'", Unit: "mm", Mean: 3.3, COV: 0.07},
	}
	set, err := sampler.SampleAll(dists, 100, sampler.NewRand(1))
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	files, err := ExportHistograms(set, filepath.Join(dir, "plots"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if filepath.Base(files[1]) != "param-corrosion-k.png" {
		t.Errorf("unexpected file name %s", filepath.Base(files[1]))
	}
	for _, f := range files {
		assertFile(t, f)
	}
}

func TestExportHistogram_Empty(t *testing.T) {
	if err := ExportHistogram(nil, "empty", "x", filepath.Join(t.TempDir(), "e.png")); err == nil {
		t.Error("expected error for empty values")
	}
}

func TestExportBandAndFailures(t *testing.T) {
	m, b, years := testBand(t)
	dir := t.TempDir()

	band := filepath.Join(dir, "bending.png")
	if err := ExportBand(m, b, years, "Bending Capacity", "kN·m", BendingStyle, band); err != nil {
		t.Fatal(err)
	}
	assertFile(t, band)

	svg := filepath.Join(dir, "lateral.svg")
	if err := ExportBand(m, b, years, "Lateral Capacity", "kN", LateralStyle, svg); err != nil {
		t.Fatal(err)
	}
	assertFile(t, svg)

	failures := filepath.Join(dir, "failures")
	if err := ExportFailures(years, aggregate.CountBelow(m, 8), failures); err != nil {
		t.Fatal(err)
	}
	assertFile(t, failures+".png")
}

func TestExportBand_MismatchedYears(t *testing.T) {
	m, b, _ := testBand(t)
	if err := ExportBand(m, b, []int{1, 2}, "x", "y", BendingStyle, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Error("expected error for mismatched years")
	}
}

func TestASCIICharts(t *testing.T) {
	_, b, _ := testBand(t)
	out := ASCIIBand(b, "Bending capacity (kN·m)")
	if !strings.Contains(out, "Bending capacity") {
		t.Errorf("expected caption in chart, got:\n%s", out)
	}
	if ASCIIBand(aggregate.Band{}, "x") != "" {
		t.Error("expected empty chart for empty band")
	}

	out = ASCIICounts([]int{0, 1, 3, 3}, "Failures")
	if !strings.Contains(out, "Failures") {
		t.Errorf("expected caption in chart, got:\n%s", out)
	}
}

func TestDrawSummaryBox(t *testing.T) {
	content := []string{"Threshold: 7.36 kN·m", "Area: 2748.89 mm²"}
	out := DrawSummaryBox("FAILURE THRESHOLD", content)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top border, title, separator, content, bottom border
	if want := len(content) + 4; len(lines) != want {
		t.Fatalf("expected %d lines, got %d", want, len(lines))
	}
	width := len([]rune(lines[0]))
	for i, l := range lines {
		if n := len([]rune(l)); n != width {
			t.Errorf("line %d: expected %d runes, got %d", i, width, n)
		}
	}
}
