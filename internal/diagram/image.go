package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/alexiusacademia/gopcr/internal/aggregate"
	"github.com/alexiusacademia/gopcr/internal/sampler"
)

// Number of histogram bins
const HistogramBins = 30

var (
	histFill  = color.RGBA{R: 135, G: 206, B: 235, A: 255} // sky blue
	traceGrey = color.RGBA{R: 128, G: 128, B: 128, A: 26}
	meanRed   = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	meanBlue  = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	purple    = color.RGBA{R: 128, G: 0, B: 128, A: 255}
)

// BandStyle selects the colour of the mean line on a band plot
type BandStyle int

const (
	BendingStyle BandStyle = iota
	LateralStyle
)

// ExportHistogram saves a histogram of values to filename.
func ExportHistogram(values []float64, title, xLabel, filename string) error {
	if len(values) == 0 {
		return fmt.Errorf("no values to plot for %q", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(values), HistogramBins)
	if err != nil {
		return err
	}
	h.FillColor = histFill
	h.LineStyle.Color = color.Black
	p.Add(h)

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// ExportHistograms saves one PNG histogram per parameter ensemble into dir
// and returns the written paths in catalog order.
func ExportHistograms(set sampler.EnsembleSet, dir string) ([]string, error) {
	var files []string
	for _, e := range set.All() {
		d := e.Distribution
		label := "Value"
		if d.Unit != "" && d.Unit != "-" {
			label = fmt.Sprintf("Value (%s)", d.Unit)
		}
		file := filepath.Join(dir, "param-"+slug(d.Name)+".png")
		if err := ExportHistogram(e.Samples(), d.Name, label, file); err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}

// ExportBand draws every trajectory of m as a faint line with the mean and
// the 2.5% / 97.5% bounds on top.
func ExportBand(m mat.Matrix, band aggregate.Band, years []int, title, yLabel string, style BandStyle, filename string) error {
	rows, cols := m.Dims()
	if cols != len(years) || band.Len() != len(years) {
		return fmt.Errorf("band plot: %d columns, %d years, %d band points", cols, len(years), band.Len())
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Years"
	p.Y.Label.Text = yLabel

	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, m)
		trace, err := plotter.NewLine(xys(years, row))
		if err != nil {
			return err
		}
		trace.LineStyle.Color = traceGrey
		trace.LineStyle.Width = vg.Points(0.5)
		p.Add(trace)
	}

	meanColor, meanLabel := meanRed, "Mean Bending Capacity"
	if style == LateralStyle {
		meanColor, meanLabel = meanBlue, "Mean Lateral Capacity"
	}

	mean, err := plotter.NewLine(xys(years, band.Mean))
	if err != nil {
		return err
	}
	mean.LineStyle.Color = meanColor
	mean.LineStyle.Width = vg.Points(2)
	p.Add(mean)
	p.Legend.Add(meanLabel, mean)

	for _, bound := range []struct {
		values []float64
		label  string
	}{
		{band.Upper, "97.5% Bound"},
		{band.Lower, "2.5% Bound"},
	} {
		l, err := plotter.NewLine(xys(years, bound.values))
		if err != nil {
			return err
		}
		l.LineStyle.Color = color.Black
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(l)
		p.Legend.Add(bound.label, l)
	}
	p.Legend.Top = true

	return save(p, 10*vg.Inch, 6*vg.Inch, filename)
}

// ExportFailures plots the number of trajectories below the threshold
// against time.
func ExportFailures(years []int, counts []int, filename string) error {
	if len(years) != len(counts) {
		return fmt.Errorf("failure plot: %d years, %d counts", len(years), len(counts))
	}

	p := plot.New()
	p.Title.Text = "Failures Over Time"
	p.X.Label.Text = "Years"
	p.Y.Label.Text = "Samples Below Threshold"

	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}
	l, err := plotter.NewLine(xys(years, values))
	if err != nil {
		return err
	}
	l.LineStyle.Color = purple
	l.LineStyle.Width = vg.Points(2)
	p.Add(l)
	p.Legend.Add("Number of Failures", l)
	p.Legend.Top = true
	p.Legend.Left = true

	return save(p, 10*vg.Inch, 6*vg.Inch, filename)
}

func xys(years []int, values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(years))
	for i, y := range years {
		pts[i] = plotter.XY{X: float64(y), Y: values[i]}
	}
	return pts
}

// save writes p to filename; the format follows the extension and
// defaults to PNG.
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

func slug(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteRune('-')
		}
	}
	return strings.Trim(sb.String(), "-")
}
