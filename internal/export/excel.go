package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lgu-hrmd/pds-screener/internal/screener"
)

// ExportToExcel writes a screening report workbook: a summary sheet, the
// ranked candidates, and the per-category score breakdown with diagnostics.
func ExportToExcel(report screener.Report, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	summarySheet := "Summary"
	candidatesSheet := "Ranked Candidates"
	breakdownSheet := "Score Breakdown"

	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(candidatesSheet)
	f.NewSheet(breakdownSheet)

	if err := createSummarySheet(f, summarySheet, report); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := createRankedCandidatesSheet(f, candidatesSheet, report); err != nil {
		return fmt.Errorf("failed to create ranked candidates sheet: %w", err)
	}
	if err := createBreakdownSheet(f, breakdownSheet, report); err != nil {
		return fmt.Errorf("failed to create breakdown sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		// Direct save can fail on some network shares; fall back to a buffer
		// write.
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return fmt.Errorf("failed to save report: direct save failed (%v), buffer write also failed: %w", err, writeErr)
		}
		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0644); fileErr != nil {
			return fmt.Errorf("failed to save report: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}
	return nil
}

func createSummarySheet(f *excelize.File, sheetName string, report screener.Report) error {
	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 50)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "PDS Screening Report")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	setLabeled := func(label string, value any) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), value)
		row++
	}

	setLabeled("Position:", report.JobTitle)
	setLabeled("Generated:", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	setLabeled("Candidates Screened:", report.Screened)
	setLabeled("Documents Rejected:", report.Rejected)
	row++

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Recommendation Tiers:")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row++

	tiers := map[string]int{}
	for _, r := range report.Results {
		if r.Assessment != nil {
			tiers[r.Assessment.Recommendation]++
		}
	}
	for _, tier := range []string{"Highly Recommended", "Recommended", "Consider with Reservations", "Not Recommended"} {
		setLabeled(tier+":", tiers[tier])
	}
	return nil
}

var tableBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

func createRankedCandidatesSheet(f *excelize.File, sheetName string, report screener.Report) error {
	widths := map[string]float64{"A": 8, "B": 30, "C": 12, "D": 28, "E": 12, "F": 14}
	for col, w := range widths {
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    tableBorder,
	})
	if err != nil {
		return err
	}

	// Tier color coding.
	highStyle, _ := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
		Border: tableBorder,
	})
	midStyle, _ := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
		Border: tableBorder,
	})
	lowStyle, _ := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Border: tableBorder,
	})

	headers := []string{"Rank", "Candidate", "Total", "Recommendation", "Confidence", "Provenance"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 2
	for _, r := range report.Results {
		if r.Assessment == nil {
			continue
		}
		name := r.Extraction.Profile.Personal.FullName()
		if name == "" {
			name = r.Name
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Rank)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("%.2f", r.Assessment.Total))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Assessment.Recommendation)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), string(r.Extraction.Confidence))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Assessment.Provenance)

		style := lowStyle
		switch {
		case r.Assessment.Total >= 80:
			style = highStyle
		case r.Assessment.Total >= 60:
			style = midStyle
		}
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), style)
		row++
	}
	return nil
}

func createBreakdownSheet(f *excelize.File, sheetName string, report screener.Report) error {
	widths := map[string]float64{"A": 30, "B": 14, "C": 10, "D": 10, "E": 10, "F": 12, "G": 10, "H": 50}
	for col, w := range widths {
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    tableBorder,
	})
	if err != nil {
		return err
	}

	headers := []string{"Candidate", "Criterion", "Rule", "Boosted", "Final", "Overridden", "Max", "Diagnostics"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 2
	for _, r := range report.Results {
		if r.Assessment == nil {
			continue
		}
		name := r.Extraction.Profile.Personal.FullName()
		if name == "" {
			name = r.Name
		}

		var diags []string
		for _, d := range r.Extraction.Diagnostics {
			diags = append(diags, d.String())
		}
		for _, d := range r.Assessment.Diagnostics {
			diags = append(diags, d.String())
		}

		first := true
		for _, cat := range r.Assessment.Breakdown.Categories() {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), name)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), cat.Criterion)
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("%.2f", cat.Rule))
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("%.2f", cat.Boosted))
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("%.2f", cat.Final))
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), cat.Overridden)
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), cat.Max)
			if first {
				f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), strings.Join(diags, "; "))
				first = false
			}
			row++
		}
		row++
	}
	return nil
}
