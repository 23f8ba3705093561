package merger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook создаёт XLSX файл с одним листом из строк rows
func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for r, row := range rows {
		for c, val := range row {
			if val == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

// writeSources создаёт ведомости A и B из примера:
// A = [{id:1,q1:5},{id:2,q1:"Absent"}], B = [{id:3,q1:8}]
func writeSources(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "A.xlsx"), [][]interface{}{
		{"id", "q1"},
		{1, 5},
		{2, "Absent"},
	})
	writeWorkbook(t, filepath.Join(dir, "B.xlsx"), [][]interface{}{
		{"id", "q1"},
		{3, 8},
	})
	return dir
}

func readRows(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}
