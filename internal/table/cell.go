package table

import (
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	Missing Kind = iota
	Number
	Text
	Bool
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	case Bool:
		return "bool"
	default:
		return "missing"
	}
}

// Cell значение ячейки: число, текст или пусто
type Cell struct {
	Kind Kind
	Num  float64
	Str  string
}

func NumberCell(v float64) Cell { return Cell{Kind: Number, Num: v} }

func TextCell(s string) Cell { return Cell{Kind: Text, Str: s} }

func MissingCell() Cell { return Cell{} }

// BoolCell логическое значение; в сортировке и расчёте среднего
// участвует как 1 или 0
func BoolCell(b bool) Cell {
	if b {
		return Cell{Kind: Bool, Num: 1}
	}
	return Cell{Kind: Bool}
}

func (c Cell) IsNumber() bool { return c.Kind == Number || c.Kind == Bool }

// String возвращает значение в том виде, в котором оно попадёт в файл
func (c Cell) String() string {
	switch c.Kind {
	case Number:
		if math.IsNaN(c.Num) {
			return ""
		}
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case Text:
		return c.Str
	case Bool:
		if c.Num != 0 {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// Coerce пытается привести значение ячейки к числу.
// Текст вида " 12.5 " считается числом, пустые ячейки и NaN - нет.
func Coerce(c Cell) (float64, bool) {
	switch c.Kind {
	case Number:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return 0, false
		}
		return c.Num, true
	case Bool:
		return c.Num, true
	case Text:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Str), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
