package merger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/marklist-merger/internal/config"
	"github.com/ryabkov82/marklist-merger/internal/table"
)

// LoadWorkbook читает первый лист файла в таблицу.
// Первая строка листа - заголовки, полностью пустые строки пропускаются.
func LoadWorkbook(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла %s: %w", path, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("в файле %s нет листов", path)
	}
	sr := sheetReader{f: f, sheet: sheetList[0]}

	rows, err := f.GetRows(sr.sheet)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения строк из %s: %w", path, err)
	}
	rawRows, err := f.GetRows(sr.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения строк из %s: %w", path, err)
	}

	if len(rows) == 0 {
		return table.New(), nil
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	t := table.New(columnNames(rows[0], width)...)
	for r := 1; r < len(rows); r++ {
		if isBlankRow(rows[r]) {
			continue
		}
		cells := make([]table.Cell, width)
		for c, formatted := range rows[r] {
			raw := formatted
			if r < len(rawRows) && c < len(rawRows[r]) {
				raw = rawRows[r][c]
			}
			cells[c] = sr.cell(c+1, r+1, formatted, raw)
		}
		t.AppendRow(cells...)
	}

	return t, nil
}

type sheetReader struct {
	f     *excelize.File
	sheet string
}

// cell определяет тип значения: числа (кроме дат) читаются как числа,
// остальное - как отображаемый в Excel текст
func (sr sheetReader) cell(col, row int, formatted, raw string) table.Cell {
	if strings.TrimSpace(formatted) == "" && strings.TrimSpace(raw) == "" {
		return table.MissingCell()
	}

	cellRef, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return table.TextCell(formatted)
	}

	valType, _ := sr.f.GetCellType(sr.sheet, cellRef)
	switch valType {
	case excelize.CellTypeBool:
		return table.BoolCell(raw == "1" || strings.ToLower(raw) == "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			break
		}
		if styleID, err := sr.f.GetCellStyle(sr.sheet, cellRef); err == nil && styleID != 0 {
			if style, err := sr.f.GetStyle(styleID); err == nil && isDateStyle(style) {
				return table.TextCell(formatted)
			}
		}
		return table.NumberCell(n)
	}

	return table.TextCell(formatted)
}

// columnNames дополняет и делает уникальными заголовки:
// пустые становятся "Unnamed: N", повторы получают суффиксы .1, .2
func columnNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for {
			if _, dup := seen[name]; !dup {
				break
			}
			seen[base]++
			name = fmt.Sprintf("%s.%d", base, seen[base])
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func isDateStyle(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return isDateFormat(style.NumFmt)
}

func isDateFormat(fmtID int) bool {
	switch fmtID {
	case 14, 15, 16, 17, 18, 19, 20, 21, 22, 27, 30, 36, 45, 46, 47:
		return true
	}
	return false
}

// isDateFormatCode ищет в пользовательском формате токены даты или времени
// (y, m, d, h, s) вне кавычек, квадратных скобок и экранированных символов
func isDateFormatCode(code string) bool {
	inQuotes, inBrackets, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuotes:
			inQuotes = r != '"'
		case inBrackets:
			inBrackets = r != ']'
		case r == '\\' || r == '_' || r == '*':
			escaped = true
		case r == '"':
			inQuotes = true
		case r == '[':
			inBrackets = true
		default:
			switch r {
			case 'y', 'Y', 'm', 'M', 'd', 'D', 'h', 'H', 's', 'S':
				return true
			}
		}
	}
	return false
}

// resolveInputFiles возвращает пути исходных файлов. Имена без расширения
// дополняются .xlsx, относительные пути отсчитываются от InputDir.
// Если файлы не перечислены, берутся все XLSX файлы из InputDir.
func resolveInputFiles(cfg *config.Config, outputPath string) ([]string, error) {
	if len(cfg.Inputs) > 0 {
		inputFiles := make([]string, 0, len(cfg.Inputs))
		for _, name := range cfg.Inputs {
			path := withXLSX(name)
			if cfg.InputDir != "" && !filepath.IsAbs(path) {
				path = filepath.Join(cfg.InputDir, path)
			}
			inputFiles = append(inputFiles, path)
		}
		return inputFiles, nil
	}

	outAbs, _ := filepath.Abs(outputPath)
	inputFiles := []string{}

	err := filepath.Walk(cfg.InputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xlsx") {
			return nil
		}
		// временные файлы Excel
		if strings.HasPrefix(info.Name(), "~$") {
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == outAbs {
			return nil
		}
		inputFiles = append(inputFiles, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при обходе папки: %w", err)
	}

	if len(inputFiles) == 0 {
		return nil, fmt.Errorf("в папке %s нет XLSX файлов", cfg.InputDir)
	}

	return inputFiles, nil
}

func withXLSX(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".xlsx"
	}
	return name
}
