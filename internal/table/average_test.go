package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAverageRowSkipNonNumeric(t *testing.T) {
	merged := Merge(sourceA(), sourceB())

	out, err := AppendAverageRow(merged, 1, true)
	require.NoError(t, err)

	require.Equal(t, merged.Len()+1, out.Len())
	last := out.Rows[out.Len()-1]
	assert.Equal(t, TextCell(AverageLabel), last[0])
	assert.Equal(t, NumberCell(6.5), last[1])
}

func TestAppendAverageRowZeroFill(t *testing.T) {
	merged := Merge(sourceA(), sourceB())

	out, err := AppendAverageRow(merged, 1, false)
	require.NoError(t, err)

	last := out.Rows[out.Len()-1]
	assert.Equal(t, NumberCell(4.33), last[1])
}

func TestAppendAverageRowLeavesLeadingColumnsBlank(t *testing.T) {
	tbl := New("name", "id", "q1", "q2")
	tbl.AppendRow(TextCell("Ann"), NumberCell(10), NumberCell(4), TextCell("7"))
	tbl.AppendRow(TextCell("Bob"), NumberCell(11), NumberCell(5), MissingCell())

	out, err := AppendAverageRow(tbl, 2, true)
	require.NoError(t, err)

	last := out.Rows[out.Len()-1]
	assert.Equal(t, TextCell(AverageLabel), last[0])
	assert.Equal(t, MissingCell(), last[1])
	assert.Equal(t, NumberCell(4.5), last[2])
	// текст "7" приводится к числу, пустая ячейка пропускается
	assert.Equal(t, NumberCell(7), last[3])
}

func TestAppendAverageRowDoesNotTouchDataRows(t *testing.T) {
	merged := Merge(sourceA(), sourceB())
	before := merged.Clone()

	out, err := AppendAverageRow(merged, 1, false)
	require.NoError(t, err)

	assert.Equal(t, before, merged)
	assert.Equal(t, before.Rows, out.Rows[:before.Len()])
}

func TestAppendAverageRowUndefinedMean(t *testing.T) {
	empty := New("name", "q1")
	out, err := AppendAverageRow(empty, 1, false)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.True(t, math.IsNaN(out.Rows[0][1].Num))

	absent := New("name", "q1")
	absent.AppendRow(TextCell("Ann"), TextCell("Absent"))
	out, err = AppendAverageRow(absent, 1, true)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.Rows[1][1].Num))
}

func TestAppendAverageRowStartColumnRange(t *testing.T) {
	tbl := Merge(sourceA(), sourceB())

	_, err := AppendAverageRow(tbl, 0, true)
	assert.ErrorIs(t, err, ErrStartColumn)

	_, err = AppendAverageRow(tbl, 3, true)
	assert.ErrorIs(t, err, ErrStartColumn)

	// start == числу колонок: усреднять нечего, остаётся только метка
	out, err := AppendAverageRow(tbl, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []Cell{TextCell(AverageLabel), MissingCell()}, out.Rows[out.Len()-1])
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 4.33, round2(13.0/3))
	assert.Equal(t, 6.67, round2(20.0/3))
	assert.Equal(t, 2.5, round2(2.5))
	// половины округляются к чётному
	assert.Equal(t, 10.12, round2(10.125))
	assert.Equal(t, 0.12, round2(0.125))
	assert.Equal(t, 0.38, round2(0.375))
}

func TestAppendAverageRowRoundsHalfToEven(t *testing.T) {
	tbl := New("name", "q1")
	tbl.AppendRow(TextCell("Ann"), NumberCell(10))
	tbl.AppendRow(TextCell("Bob"), NumberCell(10.25))

	out, err := AppendAverageRow(tbl, 1, true)
	require.NoError(t, err)
	assert.Equal(t, NumberCell(10.12), out.Rows[out.Len()-1][1])
}

func TestAppendAverageRowBoolAsNumber(t *testing.T) {
	tbl := New("name", "passed")
	tbl.AppendRow(TextCell("Ann"), BoolCell(true))
	tbl.AppendRow(TextCell("Bob"), BoolCell(false))
	tbl.AppendRow(TextCell("Cid"), BoolCell(true))
	tbl.AppendRow(TextCell("Dan"), BoolCell(true))

	out, err := AppendAverageRow(tbl, 1, true)
	require.NoError(t, err)
	assert.Equal(t, NumberCell(0.75), out.Rows[out.Len()-1][1])
}

// Сортировка после добавления итоговой строки затрагивает саму строку AVERAGE,
// поэтому в конвейере сортировка обязана идти раньше.
func TestSortBeforeAverageOrder(t *testing.T) {
	merged := Merge(sourceA(), sourceB())

	sorted, _ := SortByColumn(merged, "q1")
	right, err := AppendAverageRow(sorted, 1, false)
	require.NoError(t, err)

	averaged, err := AppendAverageRow(merged, 1, false)
	require.NoError(t, err)
	wrong, _ := SortByColumn(averaged, "q1")

	assert.Equal(t, TextCell(AverageLabel), right.Rows[right.Len()-1][0])
	assert.NotEqual(t, right, wrong)
	assert.NotEqual(t, TextCell(AverageLabel), wrong.Rows[wrong.Len()-1][0])
}
