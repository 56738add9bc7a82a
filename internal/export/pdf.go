package export

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rotisserie/eris"

	"github.com/copperworks/labelcheck/internal/model"
)

// WritePDF renders one page per report. The layout is intentionally simple:
// a header with the overall verdict, a field table, and the warning verdict.
func WritePDF(path string, reports []model.Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)

	for _, r := range reports {
		pdf.AddPage()
		writeReportPage(pdf, r)
	}
	if len(reports) == 0 {
		pdf.AddPage()
		pdf.MultiCell(0, 5, "No reports matched the export filter.", "", "L", false)
	}

	return eris.Wrapf(pdf.OutputFileAndClose(path), "export: write pdf %s", path)
}

func writeReportPage(pdf *gofpdf.Fpdf, r model.Report) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Label Verification Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Application: %s (%s)", r.ApplicationName, r.ApplicationID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Report ID: %s", r.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", r.CreatedAt.Format("2006-01-02 15:04 MST")), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Overall: %s", statusLabel(string(r.Status))), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	if len(r.Result.TopReasons) > 0 {
		pdf.Ln(2)
		for _, reason := range r.Result.TopReasons {
			pdf.MultiCell(0, 5, "- "+reason, "", "L", false)
		}
	}
	if r.Result.ErrorMessage != "" {
		pdf.MultiCell(0, 5, "Error: "+r.Result.ErrorMessage, "", "L", false)
		return
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Fields", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, fr := range r.Result.FieldResults {
		line := fmt.Sprintf("%s: %s", fr.FieldName, statusLabel(string(fr.Status)))
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		if fr.ExtractedValue != "" {
			pdf.MultiCell(0, 5, "  Found: "+fr.ExtractedValue, "", "L", false)
		}
		if fr.ExpectedValue != "" {
			pdf.MultiCell(0, 5, "  Expected: "+fr.ExpectedValue, "", "L", false)
		}
		if fr.Reason != "" {
			pdf.MultiCell(0, 5, "  "+fr.Reason, "", "L", false)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Government Warning", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	w := r.Result.Warning
	pdf.CellFormat(0, 6, fmt.Sprintf("Wording: %s    Uppercase: %s    Bold: %s",
		statusLabel(string(w.WordingStatus)), statusLabel(string(w.UppercaseStatus)), string(w.BoldStatus)), "", 1, "L", false, 0, "")
	if w.Reason != "" {
		pdf.MultiCell(0, 5, w.Reason, "", "L", false)
	}
	if w.FormattingReason != "" {
		pdf.MultiCell(0, 5, w.FormattingReason, "", "L", false)
	}
}

// statusLabel turns a snake_case status into a display label.
func statusLabel(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(s, "_", " "))
}
