package table

// Merge объединяет таблицы в одну, сохраняя порядок источников и порядок
// строк внутри каждого источника.
//
// Ожидается, что у всех таблиц одинаковый набор колонок. Это не проверяется:
// колонки сопоставляются по имени, набор колонок результата - объединение
// колонок в порядке первого появления, а отсутствующие в источнике ячейки
// остаются пустыми.
func Merge(tables ...*Table) *Table {
	out := New()
	index := make(map[string]int)

	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, name := range t.Columns {
			if _, ok := index[name]; !ok {
				index[name] = len(out.Columns)
				out.Columns = append(out.Columns, name)
			}
		}
	}

	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, row := range t.Rows {
			merged := make([]Cell, len(out.Columns))
			for i, name := range t.Columns {
				if i < len(row) {
					merged[index[name]] = row[i]
				}
			}
			out.Rows = append(out.Rows, merged)
		}
	}

	return out
}
