package table

import (
	"errors"
	"fmt"
	"math"
)

const AverageLabel = "AVERAGE"

var ErrStartColumn = errors.New("недопустимый номер первой числовой колонки")

// AppendAverageRow возвращает копию таблицы с итоговой строкой средних значений.
//
// start - индекс (с нуля) первой усредняемой колонки. Колонка 0 занята меткой
// AVERAGE, колонки между ней и start остаются пустыми. Значения, которые нельзя
// привести к числу, при skipNonNumeric пропускаются, иначе считаются нулём.
// Если усреднять нечего, в ячейку пишется NaN.
func AppendAverageRow(t *Table, start int, skipNonNumeric bool) (*Table, error) {
	if start < 1 || start > len(t.Columns) {
		return nil, fmt.Errorf("%w: %d (колонок в таблице: %d)", ErrStartColumn, start+1, len(t.Columns))
	}

	avg := make([]Cell, len(t.Columns))
	avg[0] = TextCell(AverageLabel)

	for col := start; col < len(t.Columns); col++ {
		var sum float64
		var n int
		for _, row := range t.Rows {
			v, ok := Coerce(row[col])
			if !ok {
				if skipNonNumeric {
					continue
				}
				v = 0
			}
			sum += v
			n++
		}
		if n == 0 {
			avg[col] = NumberCell(math.NaN())
			continue
		}
		avg[col] = NumberCell(round2(sum / float64(n)))
	}

	out := t.Clone()
	out.Rows = append(out.Rows, avg)
	return out, nil
}

// round2 округляет до сотых, половины - к чётному (10.125 -> 10.12)
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
