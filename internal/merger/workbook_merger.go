package merger

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/ryabkov82/marklist-merger/internal/config"
	"github.com/ryabkov82/marklist-merger/internal/table"
)

// WorkbookMerger объединяет ведомости: загрузка, слияние, сортировка,
// строка средних значений и запись с оформлением
type WorkbookMerger struct {
	Logger *slog.Logger
}

func NewWorkbookMerger(logger *slog.Logger) FileMerger {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookMerger{Logger: logger}
}

// MergeFiles возвращает список созданных файлов и количество записанных
// строк данных (без заголовка и итоговой строки). При любой ошибке
// результирующий файл не создаётся.
func (wm *WorkbookMerger) MergeFiles(cfg *config.Config) ([]string, int64, error) {

	outputPath := withXLSX(cfg.OutputPath)

	inputFiles, err := resolveInputFiles(cfg, outputPath)
	if err != nil {
		return nil, 0, err
	}

	tables := make([]*table.Table, 0, len(inputFiles))
	for _, path := range inputFiles {
		t, err := LoadWorkbook(path)
		if err != nil {
			return nil, 0, err
		}
		wm.Logger.Debug("файл загружен",
			slog.String("file", path),
			slog.Int("rows", t.Len()),
			slog.Int("columns", len(t.Columns)))

		if len(tables) > 0 && !slices.Equal(tables[0].Columns, t.Columns) {
			wm.Logger.Warn("колонки файла отличаются от первого файла",
				slog.String("file", path),
				slog.Any("columns", t.Columns),
				slog.Any("expected", tables[0].Columns))
		}
		tables = append(tables, t)
	}

	merged := table.Merge(tables...)

	// Сортировка должна идти до добавления строки средних,
	// иначе строка AVERAGE будет отсортирована вместе с данными
	if cfg.SortColumn != "" {
		sorted, ok := table.SortByColumn(merged, cfg.SortColumn)
		if !ok {
			wm.Logger.Warn("колонка для сортировки не найдена, сортировка пропущена",
				slog.String("column", cfg.SortColumn))
		}
		merged = sorted
	}

	// единственное место перевода номера колонки (с 1) в индекс (с 0)
	result, err := table.AppendAverageRow(merged, cfg.StartColumn-1, cfg.SkipNonNumeric)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка расчёта средних: %w", err)
	}

	if err := NewStyledWriter(cfg.SheetName).Write(result, outputPath); err != nil {
		return nil, 0, err
	}

	wm.Logger.Info("файл сохранён",
		slog.String("file", outputPath),
		slog.Int("sources", len(inputFiles)),
		slog.Int("rows", merged.Len()))

	return []string{outputPath}, int64(merged.Len()), nil
}
