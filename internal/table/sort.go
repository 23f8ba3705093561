package table

import "sort"

// SortByColumn упорядочивает строки по колонке column.
// Сначала идут строки с числом в этой колонке (по убыванию, TRUE/FALSE как 1/0),
// затем строки с текстом (по убыванию строк), в конце строки с пустым значением.
// Внутри равных значений сохраняется исходный порядок.
//
// Если колонки нет, возвращается исходная таблица и false.
func SortByColumn(t *Table, column string) (*Table, bool) {
	col, ok := t.Column(column)
	if !ok {
		return t, false
	}

	var numeric, text, missing [][]Cell
	for _, row := range t.Rows {
		switch row[col].Kind {
		case Number, Bool:
			numeric = append(numeric, row)
		case Text:
			text = append(text, row)
		default:
			missing = append(missing, row)
		}
	}

	sort.SliceStable(numeric, func(i, j int) bool {
		return numeric[i][col].Num > numeric[j][col].Num
	})
	sort.SliceStable(text, func(i, j int) bool {
		return text[i][col].Str > text[j][col].Str
	})

	out := New(t.Columns...)
	out.Rows = make([][]Cell, 0, len(t.Rows))
	for _, part := range [][][]Cell{numeric, text, missing} {
		for _, row := range part {
			out.Rows = append(out.Rows, append([]Cell(nil), row...))
		}
	}
	return out, true
}
