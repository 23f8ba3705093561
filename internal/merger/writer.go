package merger

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/marklist-merger/internal/table"
)

const (
	HeightHeader = 30
	HeightRow    = 20
	HeightFooter = 30
)

// StyledWriter сохраняет таблицу на один лист с оформлением:
// жирные заголовок и итоговая строка, выравнивание по центру,
// тонкие чёрные границы у всех ячеек и ширина колонок по содержимому
type StyledWriter struct {
	BaseMerger
	Sheet        string
	OutFile      *excelize.File
	StreamWriter *excelize.StreamWriter
	HeaderStyle  int
	RowStyle     int
	FooterStyle  int
	RowCounter   int
}

func NewStyledWriter(sheet string) *StyledWriter {
	sw := &StyledWriter{Sheet: sheet}
	sw.BaseMerger.Init()
	return sw
}

// Write сохраняет таблицу в path. Последняя строка таблицы оформляется
// как итоговая. Файл сначала пишется во временный и затем переименовывается.
func (sw *StyledWriter) Write(t *table.Table, path string) error {
	sw.AnalyzeWidths(t)

	if err := sw.newOutput(); err != nil {
		return err
	}
	defer sw.OutFile.Close()

	headerRow := make([]interface{}, len(sw.Headers))
	for i, h := range sw.Headers {
		headerRow[i] = excelize.Cell{Value: h, StyleID: sw.HeaderStyle}
	}
	if err := sw.setRow(headerRow, HeightHeader); err != nil {
		return fmt.Errorf("ошибка записи заголовков: %w", err)
	}

	for i, row := range t.Rows {
		styleID, height := sw.RowStyle, float64(HeightRow)
		if i == len(t.Rows)-1 {
			styleID, height = sw.FooterStyle, HeightFooter
		}
		rowData := make([]interface{}, len(row))
		for j, c := range row {
			rowData[j] = excelize.Cell{Value: cellValue(c), StyleID: styleID}
		}
		if err := sw.setRow(rowData, height); err != nil {
			return fmt.Errorf("ошибка записи строки: %w", err)
		}
	}

	if err := sw.StreamWriter.Flush(); err != nil {
		return fmt.Errorf("ошибка финального flush: %w", err)
	}

	return saveFile(sw.OutFile, path)
}

func (sw *StyledWriter) newOutput() error {
	sw.OutFile = excelize.NewFile()

	if err := sw.OutFile.SetSheetName(sw.OutFile.GetSheetName(0), sw.Sheet); err != nil {
		_ = sw.OutFile.Close()
		return fmt.Errorf("недопустимое имя листа %q: %w", sw.Sheet, err)
	}

	if err := sw.prepareStyles(); err != nil {
		_ = sw.OutFile.Close()
		return err
	}

	var err error
	sw.StreamWriter, err = sw.OutFile.NewStreamWriter(sw.Sheet)
	if err != nil {
		_ = sw.OutFile.Close()
		return fmt.Errorf("ошибка создания StreamWriter: %w", err)
	}

	// ширину колонок StreamWriter принимает только до первой строки
	for colIdx := 1; colIdx <= len(sw.Headers); colIdx++ {
		width := sw.MaxColWidths[colIdx-1]
		if width == 0 {
			continue
		}
		if err := sw.StreamWriter.SetColWidth(colIdx, colIdx, float64(width)); err != nil {
			_ = sw.OutFile.Close()
			return fmt.Errorf("ошибка установки ширины колонки %d: %w", colIdx, err)
		}
	}

	sw.RowCounter = 1
	return nil
}

func (sw *StyledWriter) prepareStyles() error {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	wrapped := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	var err error
	if sw.HeaderStyle, err = sw.OutFile.NewStyle(&excelize.Style{
		Border:    border,
		Font:      &excelize.Font{Bold: true},
		Alignment: wrapped,
	}); err != nil {
		return fmt.Errorf("ошибка создания стиля заголовка: %w", err)
	}
	if sw.RowStyle, err = sw.OutFile.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: wrapped,
	}); err != nil {
		return fmt.Errorf("ошибка создания стиля строк: %w", err)
	}
	if sw.FooterStyle, err = sw.OutFile.NewStyle(&excelize.Style{
		Border:    border,
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return fmt.Errorf("ошибка создания стиля итоговой строки: %w", err)
	}
	return nil
}

func (sw *StyledWriter) setRow(values []interface{}, height float64) error {
	cell, err := excelize.CoordinatesToCellName(1, sw.RowCounter)
	if err != nil {
		return err
	}
	if err := sw.StreamWriter.SetRow(cell, values, excelize.RowOpts{Height: height}); err != nil {
		return err
	}
	sw.RowCounter++
	return nil
}

// cellValue преобразует ячейку в значение для excelize.
// Пустые ячейки и NaN пишутся пустой строкой, чтобы сохранить стиль ячейки.
func cellValue(c table.Cell) interface{} {
	switch c.Kind {
	case table.Number:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return ""
		}
		return c.Num
	case table.Text:
		return c.Str
	case table.Bool:
		return c.Num != 0
	}
	return ""
}

func saveFile(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ошибка создания папки %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".merged-*.xlsx")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	if err := f.Write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("ошибка сохранения файла: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ошибка сохранения файла: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("ошибка сохранения файла %s: %w", path, err)
	}
	return nil
}
