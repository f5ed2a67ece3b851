package report

import (
	"fmt"
	"os"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gopcr/internal/analysis"
	"github.com/alexiusacademia/gopcr/internal/version"
)

// Years listed in the PDF summary table
var summaryYears = []int{1, 5, 10, 20, 30, 40, 50}

// WritePDF writes a one-page summary of r. Existing PNG figures passed in
// images are appended one per page.
func WritePDF(r *analysis.Result, filename string, images ...string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Pipe Corrosion Reliability Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("gopcr v%s  -  %s", version.Version, time.Now().Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Trajectories: %d   Years: 1..%d   Seed: %d",
		r.Config.Trajectories, r.Config.LastYear, r.Config.Seed))
	pdf.Ln(10)

	g := r.Geometry
	section(pdf, "Section")
	for _, kv := range [][2]string{
		{"Outer diameter", fmt.Sprintf("%.1f mm", g.OuterDiameter)},
		{"Wall thickness", fmt.Sprintf("%.1f mm", g.WallThickness)},
		{"Area", fmt.Sprintf("%.2f mm²", g.Area)},
		{"Section modulus", fmt.Sprintf("%.1f mm³", g.SectionModulus)},
		{"Static bending capacity", fmt.Sprintf("%.2f ± %.2f kN·m", r.StaticBendingSummary.Mean, r.StaticBendingSummary.StdDev)},
		{"Failure threshold", fmt.Sprintf("%.2f kN·m", r.Failures.Threshold)},
	} {
		pdf.CellFormat(70, 6, tr(kv[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(kv[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Capacity over time")
	headers := []string{"Year", "M mean", "M 2.5%", "M 97.5%", "Lat. mean", "Failures"}
	widths := []float64{20, 28, 28, 28, 32, 24}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, year := range summaryYears {
		j := r.YearIndex(year)
		if j < 0 {
			continue
		}
		cells := []string{
			fmt.Sprintf("%d", year),
			fmt.Sprintf("%.3f", r.BendingBand.Mean[j]),
			fmt.Sprintf("%.3f", r.BendingBand.Lower[j]),
			fmt.Sprintf("%.3f", r.BendingBand.Upper[j]),
			fmt.Sprintf("%.6f", r.LateralBand.Mean[j]),
			fmt.Sprintf("%d", r.Failures.Counts[j]),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 6, tr("M: bending capacity (kN·m); Lat.: lateral capacity (kN)"))
	pdf.Ln(6)

	for _, img := range images {
		if _, err := os.Stat(img); err != nil {
			continue
		}
		pdf.AddPage()
		pdf.ImageOptions(img, 10, 20, 190, 0, false, gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}

	return pdf.OutputFileAndClose(filename)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}
