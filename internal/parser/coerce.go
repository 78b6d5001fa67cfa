package parser

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPrefix matches the leading number of a string, e.g. "12abc" -> "12".
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Int converts a decoded JSON value to an integer the way loosely typed
// clients expect: numbers truncate, booleans are 0/1, strings are read up to
// the first non-numeric character and everything else is 0.
func Int(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return truncate(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n)
		}
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return truncate(f)
	case string:
		return IntString(x)
	default:
		return 0
	}
}

// IntString converts the numeric prefix of s to an integer, 0 when there is none.
func IntString(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	m := numericPrefix.FindString(s)
	if m == "" {
		return 0
	}
	if n, err := strconv.Atoi(m); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return truncate(f)
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int(f)
}
