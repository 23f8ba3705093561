package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ryabkov82/marklist-merger/internal/config"
	"github.com/ryabkov82/marklist-merger/internal/logging"
	"github.com/ryabkov82/marklist-merger/internal/merger"
)

type Output struct {
	Success     bool     `json:"success"`
	RunID       string   `json:"run_id"`
	OutputFiles []string `json:"output_files,omitempty"`
	Error       string   `json:"error,omitempty"`
	Duration    string   `json:"duration"`
	RowCount    int64    `json:"row_count,omitempty"`
}

func main() {
	out := run(os.Args[1:], os.Stdin, os.Stderr)
	emitJSON(os.Stdout, out)
	if !out.Success {
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stderr io.Writer) Output {

	start := time.Now()
	runID := uuid.NewString()

	fail := func(format string, err error) Output {
		return Output{
			Success:  false,
			RunID:    runID,
			Error:    fmt.Sprintf(format, err),
			Duration: time.Since(start).String(),
		}
	}

	cfg, err := config.ParseFlags(args)
	if err != nil {
		return fail("Ошибка конфигурации: %v", err)
	}

	if cfg.Interactive {
		if err := config.Prompt(stdin, stderr, cfg); err != nil {
			return fail("Ошибка ввода: %v", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fail("Ошибка конфигурации: %v", err)
	}

	logger, closeLog := logging.New(cfg.Logging, stderr)
	defer closeLog()
	logger = logger.With(slog.String("run_id", runID))

	logger.Info("объединение файлов",
		slog.Any("inputs", cfg.Inputs),
		slog.String("dir", cfg.InputDir),
		slog.String("output", cfg.OutputPath),
		slog.String("sheet", cfg.SheetName),
		slog.String("sort_column", cfg.SortColumn),
		slog.Int("start_column", cfg.StartColumn),
		slog.Bool("skip_non_numeric", cfg.SkipNonNumeric))

	m := merger.NewWorkbookMerger(logger)
	outputFiles, rowCount, err := m.MergeFiles(cfg)
	if err != nil {
		logger.Error("ошибка объединения", slog.Any("error", err))
		return fail("Ошибка объединения: %v", err)
	}

	return Output{
		Success:     true,
		RunID:       runID,
		OutputFiles: outputFiles,
		RowCount:    rowCount,
		Duration:    time.Since(start).String(),
	}
}

func emitJSON(w io.Writer, out Output) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Ошибка вывода JSON: %v", err)
	}
}
