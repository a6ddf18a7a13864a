package calculator

import (
	"math"
	"strconv"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0.0"},
		{in: math.Copysign(0, -1), want: "-0.0"},
		{in: 10, want: "10.0"},
		{in: -3, want: "-3.0"},
		{in: 2.5, want: "2.5"},
		{in: 0.001, want: "0.001"},
		{in: 9999999, want: "9999999.0"},
		{in: 1e7, want: "1.0E7"},
		{in: 12345678, want: "1.2345678E7"},
		{in: -1.5e10, want: "-1.5E10"},
		{in: 0.0001, want: "1.0E-4"},
		{in: 1.2345e-5, want: "1.2345E-5"},
		{in: math.Inf(1), want: "Infinity"},
		{in: math.Inf(-1), want: "-Infinity"},
		{in: math.NaN(), want: "NaN"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := FormatNumber(tc.in); got != tc.want {
				t.Fatalf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatNumberParsesBack(t *testing.T) {
	for _, v := range []float64{1, -1, 0.1, 1.0 / 3, 1e7, 6.02e23, 1e-9, 123.456, math.Inf(1), math.Inf(-1)} {
		s := FormatNumber(v)
		got, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", s, err)
		}
		if got != v {
			t.Fatalf("round trip of %v through %q gave %v", v, s, got)
		}
	}
}
