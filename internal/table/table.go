package table

// Table упорядоченный набор именованных колонок.
// Каждая строка содержит ровно len(Columns) ячеек.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// AppendRow добавляет строку, выравнивая её по числу колонок:
// недостающие ячейки становятся пустыми, лишние отбрасываются.
func (t *Table) AppendRow(cells ...Cell) {
	row := make([]Cell, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Column возвращает индекс колонки по имени
func (t *Table) Column(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

func (t *Table) Len() int { return len(t.Rows) }

// Clone возвращает независимую копию таблицы
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([][]Cell, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]Cell(nil), row...)
	}
	return out
}
