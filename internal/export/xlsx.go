package export

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/copperworks/labelcheck/internal/model"
)

// WriteXLSX writes a workbook with a summary sheet (one row per report) and
// a detail sheet (one row per field verdict).
func WriteXLSX(path string, reports []model.Report) error {
	f := xlsx.NewFile()

	if err := writeSummarySheet(f, reports); err != nil {
		return err
	}
	if err := writeFieldSheet(f, reports); err != nil {
		return err
	}

	return eris.Wrapf(f.Save(path), "export: write xlsx %s", path)
}

func writeSummarySheet(f *xlsx.File, reports []model.Report) error {
	sheet, err := f.AddSheet("Reports")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}

	addRow(sheet, "report_id", "application_id", "application_name", "status", "top_reasons", "image_count", "processing_time_ms", "created_at")
	for _, r := range reports {
		addRow(sheet,
			r.ID,
			r.ApplicationID,
			r.ApplicationName,
			string(r.Status),
			strings.Join(r.Result.TopReasons, "; "),
			strconv.Itoa(r.Result.ImageCount),
			strconv.FormatInt(r.Result.ProcessingTimeMs, 10),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return nil
}

func writeFieldSheet(f *xlsx.File, reports []model.Report) error {
	sheet, err := f.AddSheet("Fields")
	if err != nil {
		return eris.Wrap(err, "export: add field sheet")
	}

	addRow(sheet, "report_id", "application_id", "field", "status", "extracted_value", "expected_value", "reason")
	for _, r := range reports {
		for _, fr := range r.Result.FieldResults {
			addRow(sheet,
				r.ID,
				r.ApplicationID,
				fr.FieldName,
				string(fr.Status),
				fr.ExtractedValue,
				fr.ExpectedValue,
				fr.Reason,
			)
		}
		w := r.Result.Warning
		addRow(sheet,
			r.ID,
			r.ApplicationID,
			"Government Warning",
			string(w.OverallStatus),
			w.ExtractedWarning,
			"",
			firstNonEmpty(w.Reason, w.FormattingReason),
		)
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
