// Package report writes the aggregates of an analysis run to a workbook or
// a one-page PDF summary.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gopcr/internal/analysis"
)

// Sheet names of the exported workbook
const (
	SheetGeometry   = "Geometry"
	SheetParameters = "Parameters"
	SheetYearly     = "Yearly"
)

// WriteWorkbook exports geometry, parameter statistics and the per-year
// bands and failure counts of r to an .xlsx file.
func WriteWorkbook(r *analysis.Result, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetGeometry); err != nil {
		return err
	}
	for _, name := range []string{SheetParameters, SheetYearly} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	if err := writeGeometry(f, r); err != nil {
		return fmt.Errorf("geometry sheet: %w", err)
	}
	if err := writeParameters(f, r); err != nil {
		return fmt.Errorf("parameters sheet: %w", err)
	}
	if err := writeYearly(f, r); err != nil {
		return fmt.Errorf("yearly sheet: %w", err)
	}

	return f.SaveAs(filename)
}

func writeGeometry(f *excelize.File, r *analysis.Result) error {
	g := r.Geometry
	rows := [][]any{
		{"Property", "Value", "Unit"},
		{"Outer diameter", g.OuterDiameter, "mm"},
		{"Wall thickness", g.WallThickness, "mm"},
		{"Inner diameter", g.InnerDiameter, "mm"},
		{"Area", g.Area, "mm²"},
		{"Moment of inertia", g.MomentOfInertia, "mm⁴"},
		{"Section modulus", g.SectionModulus, "mm³"},
		{"Static bending capacity (mean)", r.StaticBendingSummary.Mean, "kN·m"},
		{"Static bending capacity (std dev)", r.StaticBendingSummary.StdDev, "kN·m"},
		{"Failure threshold", r.Failures.Threshold, "kN·m"},
		{"Trajectories", r.Config.Trajectories, ""},
		{"Seed", r.Config.Seed, ""},
	}
	return setRows(f, SheetGeometry, rows)
}

func writeParameters(f *excelize.File, r *analysis.Result) error {
	rows := [][]any{{"Parameter", "Unit", "Mean", "COV", "Sample mean", "Sample std dev", "Min", "Max"}}
	for _, e := range r.Parameters.All() {
		d, s := e.Distribution, e.Summary()
		rows = append(rows, []any{d.Name, d.Unit, d.Mean, d.COV, s.Mean, s.StdDev, s.Min, s.Max})
	}
	return setRows(f, SheetParameters, rows)
}

func writeYearly(f *excelize.File, r *analysis.Result) error {
	rows := [][]any{{
		"Year",
		"Bending mean (kN·m)", "Bending 2.5%", "Bending 97.5%",
		"Lateral mean (kN)", "Lateral 2.5%", "Lateral 97.5%",
		"Failures",
	}}
	b, l := r.BendingBand, r.LateralBand
	for j, year := range r.Series.Years {
		rows = append(rows, []any{
			year,
			b.Mean[j], b.Lower[j], b.Upper[j],
			l.Mean[j], l.Lower[j], l.Upper[j],
			r.Failures.Counts[j],
		})
	}
	return setRows(f, SheetYearly, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
