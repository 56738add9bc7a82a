package expected

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/copperworks/labelcheck/internal/model"
)

// XLSXOptions controls which sheet and rows are read from a workbook.
type XLSXOptions struct {
	// SheetName selects a sheet by name. Takes precedence over SheetIndex.
	SheetName string
	// SheetIndex selects a sheet by 0-based position. Default 0.
	SheetIndex int
	// SkipRows skips rows before the header row.
	SkipRows int
}

// Recognized header columns. Header matching is case-insensitive and
// tolerates spaces and hyphens in place of underscores.
const (
	colApplicationID   = "application_id"
	colApplicationName = "application_name"
	colBrandName       = "brand_name"
	colClassType       = "class_type"
	colAlcoholContent  = "alcohol_content"
	colNetContents     = "net_contents"
	colBottlerProducer = "bottler_producer"
	colCountryOfOrigin = "country_of_origin"
	// colImages holds semicolon-separated image paths.
	colImages = "images"
)

// LoadXLSX reads entries from an Excel workbook. The first non-skipped row
// is the header and must contain an application_id column; value columns
// are matched by name and may appear in any order.
func LoadXLSX(path string, opts XLSXOptions) ([]Entry, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "expected: open xlsx %s", path)
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := sheet.Rows
	if opts.SkipRows > 0 {
		if opts.SkipRows >= len(rows) {
			return nil, eris.Errorf("expected: skip_rows %d leaves no rows in %s", opts.SkipRows, path)
		}
		rows = rows[opts.SkipRows:]
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("expected: sheet %q is empty", sheet.Name)
	}

	cols, err := headerColumns(rowToStrings(rows[0]))
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, row := range rows[1:] {
		cells := rowToStrings(row)
		if isBlankRow(cells) {
			continue
		}
		entries = append(entries, entryFromRow(cells, cols))
	}

	if err := validate(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("expected: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}
	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("expected: sheet index %d out of range (%d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		out[i] = strings.TrimSpace(cell.String())
	}
	return out
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// headerColumns maps recognized column names to their positions.
func headerColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	if _, ok := cols[colApplicationID]; !ok {
		return nil, eris.New("expected: header row has no application_id column")
	}
	return cols, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

func entryFromRow(cells []string, cols map[string]int) Entry {
	at := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(cells) {
			return ""
		}
		return cells[i]
	}

	e := Entry{
		ApplicationID:   at(colApplicationID),
		ApplicationName: at(colApplicationName),
		Images:          splitImages(at(colImages)),
	}

	v := model.ExpectedValues{
		BrandName:       at(colBrandName),
		ClassType:       at(colClassType),
		AlcoholContent:  at(colAlcoholContent),
		NetContents:     at(colNetContents),
		BottlerProducer: at(colBottlerProducer),
		CountryOfOrigin: at(colCountryOfOrigin),
	}
	if v != (model.ExpectedValues{}) {
		e.Values = &v
	}
	return e
}

func splitImages(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
