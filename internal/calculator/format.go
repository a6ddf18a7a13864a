package calculator

import (
	"math"
	"strconv"
	"strings"
)

// Plain decimal notation is used for magnitudes in [sciLow, sciHigh).
const (
	sciLow  = 1e-3
	sciHigh = 1e7
)

// FormatNumber renders v the way the keypad displays results: integral
// values keep a ".0" suffix, very large or very small magnitudes switch to
// "1.5E9" style notation, and non-finite values print as "Infinity",
// "-Infinity" or "NaN". The output always parses back with ParseFloat.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if v == 0 {
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(v)
	if abs >= sciLow && abs < sciHigh {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	// 'E' yields "1.5E+09"; rewrite to "1.5E9".
	s := strconv.FormatFloat(v, 'E', -1, 64)
	mant, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	n, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return mant + "E" + strconv.Itoa(n)
}
