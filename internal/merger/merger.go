package merger

import (
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/marklist-merger/internal/config"
	"github.com/ryabkov82/marklist-merger/internal/table"
)

type FileMerger interface {
	MergeFiles(cfg *config.Config) ([]string, int64, error)
}

type BaseMerger struct {
	Headers      []string
	MaxColWidths map[int]int
}

// Init инициализирует базовые поля
func (bm *BaseMerger) Init() {
	bm.MaxColWidths = make(map[int]int)
	bm.Headers = make([]string, 0)
}

// AnalyzeWidths определяет ширину колонок по самому длинному значению
// (включая заголовок) плюс 2 символа отступа
func (bm *BaseMerger) AnalyzeWidths(t *table.Table) {
	bm.Init()
	bm.Headers = append(bm.Headers, t.Columns...)

	for i, h := range t.Columns {
		bm.observe(i, h)
	}
	for _, row := range t.Rows {
		for i, c := range row {
			bm.observe(i, c.String())
		}
	}

	for i, w := range bm.MaxColWidths {
		w += 2
		if w > excelize.MaxColumnWidth {
			w = excelize.MaxColumnWidth
		}
		bm.MaxColWidths[i] = w
	}
}

func (bm *BaseMerger) observe(col int, value string) {
	if n := utf8.RuneCountInString(value); n >= bm.MaxColWidths[col] {
		bm.MaxColWidths[col] = n
	}
}
