package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix префикс переменных окружения (MERGER_LOG_LEVEL и т.д.)
const EnvPrefix = "MERGER"

type Config struct {
	InputDir       string   `yaml:"dir" validate:"omitempty,dir"`
	Inputs         []string `yaml:"inputs" validate:"dive,required"`
	OutputPath     string   `yaml:"output" validate:"required"`
	SheetName      string   `yaml:"sheet" validate:"required,max=31"`
	SortColumn     string   `yaml:"sort_column"`
	StartColumn    int      `yaml:"start_column" validate:"gte=2"` // номер (с 1) первой числовой колонки
	SkipNonNumeric bool     `yaml:"skip_non_numeric"`
	Interactive    bool     `yaml:"-"`

	Logging LoggingConfig `yaml:"-"`
}

type LoggingConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
	SeqURL string `envconfig:"SEQ_URL"`
}

func Default() *Config {
	return &Config{
		OutputPath:  "merged.xlsx",
		SheetName:   "Sheet1",
		StartColumn: 3,
	}
}

// ParseFlags разбирает аргументы командной строки.
// Значения из файла задания (-config) перекрываются явно заданными флагами.
// Запуск без аргументов включает интерактивный режим.
func ParseFlags(args []string) (*Config, error) {

	var (
		jobPath     string
		inputs      string
		dir         string
		out         string
		sheet       string
		sortColumn  string
		startColumn int
		skip        bool
		interactive bool
	)

	fs := flag.NewFlagSet("marklist-merger", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&jobPath, "config", "", "YAML файл с параметрами задания")
	fs.StringVar(&inputs, "in", "", "исходные XLSX файлы через запятую (расширение можно не указывать)")
	fs.StringVar(&dir, "dir", "", "папка с исходными XLSX файлами")
	fs.StringVar(&out, "out", "merged.xlsx", "результирующий файл")
	fs.StringVar(&sheet, "sheet", "Sheet1", "имя листа в результирующем файле")
	fs.StringVar(&sortColumn, "sort", "", "заголовок колонки для сортировки")
	fs.IntVar(&startColumn, "start", 3, "номер первой числовой колонки (с 1)")
	fs.Func("skip", "пропускать нечисловые значения при расчёте среднего (y/n)", func(s string) error {
		v, err := ParseYesNo(s)
		skip = v
		return err
	})
	fs.BoolVar(&interactive, "i", false, "интерактивный ввод параметров")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("ошибка разбора аргументов: %w", err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("неожиданные аргументы: %s", strings.Join(fs.Args(), " "))
	}

	cfg := Default()
	if jobPath != "" {
		if err := cfg.loadFromFile(jobPath); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Inputs = SplitList(inputs)
		case "dir":
			cfg.InputDir = dir
		case "out":
			cfg.OutputPath = out
		case "sheet":
			cfg.SheetName = sheet
		case "sort":
			cfg.SortColumn = sortColumn
		case "start":
			cfg.StartColumn = startColumn
		case "skip":
			cfg.SkipNonNumeric = skip
		}
	})
	cfg.Interactive = interactive || len(args) == 0

	if err := envconfig.Process(EnvPrefix, &cfg.Logging); err != nil {
		return nil, fmt.Errorf("ошибка чтения переменных окружения: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла задания %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("ошибка разбора файла задания %s: %w", path, err)
	}
	return nil
}

var validate = validator.New()

// Validate проверяет параметры и нормализует пути
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 && c.InputDir == "" {
		return fmt.Errorf("неверные параметры: необходимо указать исходные файлы (-in) или папку (-dir)")
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return fmt.Errorf("неверные параметры: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("неверные параметры: %w", err)
	}

	// Нормализация путей
	if c.InputDir != "" {
		c.InputDir = filepath.Clean(c.InputDir)
	}
	c.OutputPath = filepath.Clean(c.OutputPath)

	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch strings.SplitN(fe.Field(), "[", 2)[0] {
	case "Inputs":
		return "пустое имя исходного файла"
	case "InputDir":
		return fmt.Sprintf("папка %v не найдена", fe.Value())
	case "OutputPath":
		return "необходимо указать результирующий файл (-out)"
	case "SheetName":
		return "имя листа должно содержать от 1 до 31 символа"
	case "StartColumn":
		return fmt.Sprintf("номер первой числовой колонки должен быть не меньше 2, получено %v", fe.Value())
	}
	return fmt.Sprintf("поле %s не прошло проверку %s", fe.Namespace(), fe.Tag())
}

// ParseYesNo разбирает ответ y/n
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("ожидается 'y' или 'n', получено %q", s)
}

// SplitList разбивает строку с именами через запятую
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
