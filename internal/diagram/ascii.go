package diagram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gopcr/internal/aggregate"
)

// Terminal chart size
const (
	chartHeight = 12
	chartWidth  = 60
)

// ASCIIBand renders the mean and the percentile bounds of a band as a
// terminal line chart.
func ASCIIBand(band aggregate.Band, caption string) string {
	if band.Len() == 0 {
		return ""
	}
	return asciigraph.PlotMany(
		[][]float64{band.Upper, band.Mean, band.Lower},
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Default, asciigraph.Red, asciigraph.Default),
		asciigraph.SeriesLegends("97.5%", "mean", "2.5%"),
		asciigraph.Caption(caption),
	)
}

// ASCIICounts renders the yearly failure counts as a terminal line chart.
func ASCIICounts(counts []int, caption string) string {
	if len(counts) == 0 {
		return ""
	}
	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}
	return asciigraph.Plot(values,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Purple),
		asciigraph.Caption(caption),
	)
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to width runes, not bytes (mm², kN·m).
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
