package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leaplisp/pkg/symbol"
)

// Repr returns the readable text of v. Numbers, strings, symbols and
// lists of them read back as equal values.
func Repr(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v, true)
	return sb.String()
}

// Display is Repr except that a top-level string is written raw.
func Display(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v, false)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value, quote bool) {
	switch val := v.(type) {
	case int64:
		sb.WriteString(strconv.FormatInt(val, 10))
	case float64:
		sb.WriteString(formatFloat(val))
	case string:
		if quote {
			sb.WriteByte('"')
			sb.WriteString(val)
			sb.WriteByte('"')
		} else {
			sb.WriteString(val)
		}
	case *symbol.Symbol:
		sb.WriteString(val.Name())
	case List:
		sb.WriteByte('(')
		for i, elem := range val {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeValue(sb, elem, true)
		}
		sb.WriteByte(')')
	case *Builtin:
		sb.WriteString("<builtin ")
		sb.WriteString(val.Name)
		sb.WriteByte('>')
	case *Closure:
		sb.WriteString("<lambda (")
		for i, p := range val.Params {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.Name())
		}
		sb.WriteString(")>")
	default:
		sb.WriteString("<invalid>")
	}
}

// formatFloat keeps a float recognizable as a float when read back.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
