package record

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Table is the display form of a collection: the columns of its first item
// and one row of cell text per item.
type Table struct {
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Tabulate derives the table for items. The column set is exactly the key set
// of the first item; later items contribute cells only for those keys.
func Tabulate[F Fields](items []F) Table {
	t := Table{
		Columns: []Column{},
		Rows:    make([][]string, 0, len(items)),
	}

	if len(items) == 0 {
		return t
	}

	for _, key := range items[0].Keys() {
		t.Columns = append(t.Columns, Column{Key: key, Label: Label(key)})
	}

	for _, item := range items {
		row := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			if v, ok := item.Lookup(col.Key); ok {
				row[i] = CellText(v)
			}
		}

		t.Rows = append(t.Rows, row)
	}

	return t
}

// Label upper-cases the first character of key and leaves the rest alone.
// Only characters of the Basic Multilingual Plane are changed, using full
// case mapping, so "ß" becomes "SS".
func Label(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || r > 0xFFFF {
		return key
	}

	return cases.Upper(language.Und).String(key[:size]) + key[size:]
}

// CellText is the display text of a value: strings as they are, numbers and
// booleans in their string form, everything else serialised as JSON.
func CellText(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return formatNumber(v.Num)
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	default:
		if !v.Exists() {
			return ""
		}

		return Stringify(v)
	}
}

// Stringify serialises v as compact JSON, enumerating object keys in the
// same order as Record.Keys.
func Stringify(v gjson.Result) string {
	b := &strings.Builder{}
	writeJSON(b, v)

	return b.String()
}

func writeJSON(b *strings.Builder, v gjson.Result) {
	switch {
	case v.IsObject():
		b.WriteByte('{')
		for i, f := range fromObject(v).fields {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, f.Key)
			b.WriteByte(':')
			writeJSON(b, f.Value)
		}
		b.WriteByte('}')
	case v.IsArray():
		b.WriteByte('[')
		for i, item := range v.Array() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, item)
		}
		b.WriteByte(']')
	case v.Type == gjson.String:
		writeString(b, v.Str)
	case v.Type == gjson.Number:
		b.WriteString(formatNumber(v.Num))
	case v.Type == gjson.True:
		b.WriteString("true")
	case v.Type == gjson.False:
		b.WriteString("false")
	default:
		b.WriteString("null")
	}
}

func writeString(b *strings.Builder, s string) {
	out, err := json.MarshalNoEscape(s)
	if err != nil {
		b.WriteString(strconv.Quote(s))
		return
	}

	b.Write(out)
}

// formatNumber renders f the way JavaScript converts numbers to strings.
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}

	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")

		return mantissa + "e" + sign + digits
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}
