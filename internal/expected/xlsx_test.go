package expected

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "expected.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestLoadXLSX_Basic(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"application_id", "application_name", "brand_name", "class_type", "alcohol_content", "net_contents", "bottler_producer", "country_of_origin"},
			{"app-1", "Old Tom Gin 750ml", "Old Tom", "Gin", "47% ABV", "750 mL", "Copperworks Distilling", "United States"},
			{"app-2", "Single Malt", "Copperworks", "Single Malt Whiskey", "96 proof", "750ml", "", ""},
		},
	})

	entries, err := LoadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "app-1", first.ApplicationID)
	assert.Equal(t, "Old Tom Gin 750ml", first.ApplicationName)
	require.NotNil(t, first.Values)
	assert.Equal(t, "Old Tom", first.Values.BrandName)
	assert.Equal(t, "United States", first.Values.CountryOfOrigin)

	second := entries[1]
	require.NotNil(t, second.Values)
	assert.Equal(t, "96 proof", second.Values.AlcoholContent)
	assert.Empty(t, second.Values.CountryOfOrigin)
}

func TestLoadXLSX_ImagesColumn(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"application_id", "brand_name", "images"},
			{"app-1", "Old Tom", "front.jpg; back.jpg"},
			{"app-2", "Copperworks", ""},
		},
	})

	entries, err := LoadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"front.jpg", "back.jpg"}, entries[0].Images)
	assert.Nil(t, entries[1].Images)
}

func TestLoadXLSX_HeaderVariants(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"Application ID", "Brand-Name", "NET CONTENTS"},
			{"app-9", "Stillhouse", "1 L"},
		},
	})

	entries, err := LoadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "app-9", entries[0].ApplicationID)
	require.NotNil(t, entries[0].Values)
	assert.Equal(t, "Stillhouse", entries[0].Values.BrandName)
	assert.Equal(t, "1 L", entries[0].Values.NetContents)
}

func TestLoadXLSX_LabelOnlyRow(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"application_id", "application_name", "brand_name"},
			{"app-1", "No values supplied", ""},
		},
	})

	entries, err := LoadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Values)
}

func TestLoadXLSX_SkipsBlankRows(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"application_id", "brand_name"},
			{"app-1", "First"},
			{"", ""},
			{"app-2", "Second"},
		},
	})

	entries, err := LoadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "app-2", entries[1].ApplicationID)
}

func TestLoadXLSX_SheetNameAndSkipRows(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Cover":        {{"nothing useful"}},
		"Applications": {
			{"exported 2026-08-01"},
			{"application_id", "brand_name"},
			{"app-5", "Old Tom"},
		},
	})

	entries, err := LoadXLSX(path, XLSXOptions{SheetName: "Applications", SkipRows: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "app-5", entries[0].ApplicationID)
}

func TestLoadXLSX_SheetNameNotFound(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {{"application_id"}},
	})

	_, err := LoadXLSX(path, XLSXOptions{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadXLSX_SheetIndexOutOfRange(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {{"application_id"}},
	})

	_, err := LoadXLSX(path, XLSXOptions{SheetIndex: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestLoadXLSX_MissingIDColumn(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"brand_name", "class_type"},
			{"Old Tom", "Gin"},
		},
	})

	_, err := LoadXLSX(path, XLSXOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application_id")
}

func TestLoadXLSX_DuplicateID(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"application_id", "brand_name"},
			{"app-1", "First"},
			{"app-1", "Again"},
		},
	})

	_, err := LoadXLSX(path, XLSXOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate application id")
}
