package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompt запрашивает параметры задания у пользователя.
// Некорректный номер колонки или ответ на вопрос y/n прерывают работу.
func Prompt(r io.Reader, w io.Writer, cfg *Config) error {
	sc := bufio.NewScanner(r)

	ask := func(question string) (string, error) {
		fmt.Fprint(w, question)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("ошибка чтения ввода: %w", err)
			}
			return "", fmt.Errorf("ввод прерван")
		}
		return strings.TrimSpace(sc.Text()), nil
	}

	answer, err := ask("Имена исходных XLSX файлов через запятую (без расширения .xlsx): ")
	if err != nil {
		return err
	}
	cfg.Inputs = SplitList(answer)

	if cfg.OutputPath, err = ask("Имя результирующего файла: "); err != nil {
		return err
	}
	if cfg.SheetName, err = ask("Имя листа в результирующем файле: "); err != nil {
		return err
	}
	if cfg.SortColumn, err = ask("Заголовок колонки для сортировки (пусто - без сортировки): "); err != nil {
		return err
	}

	if answer, err = ask("Номер колонки, с которой начинаются числовые значения: "); err != nil {
		return err
	}
	cfg.StartColumn, err = strconv.Atoi(answer)
	if err != nil {
		return fmt.Errorf("номер колонки должен быть целым числом: %q", answer)
	}

	if answer, err = ask("Пропускать нечисловые значения (Absent, пустые и т.п.) при расчёте среднего? [y/n]: "); err != nil {
		return err
	}
	if cfg.SkipNonNumeric, err = ParseYesNo(answer); err != nil {
		return err
	}

	return nil
}
