// Package export renders verification reports as JSON, XLSX, or PDF files.
package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/copperworks/labelcheck/internal/model"
)

// WriteJSON writes reports as an indented JSON array.
func WriteJSON(w io.Writer, reports []model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}

// WriteJSONFile writes reports to a JSON file at path.
func WriteJSONFile(path string, reports []model.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := WriteJSON(f, reports); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}
