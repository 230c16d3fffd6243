package calc

import (
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		a, op, b string
		want     string
	}{
		{"2", "+", "3", "5"},
		{"5", "%", "anything", "0,05"},
		{"50", "%", "", "0,5"},
		{"2", "^", "10", "1024"},
		{"1", "/", "3", "0,333333"},
		{"2", "/", "3", "0,666667"},
		{"7", "/", "0", "Infinity"},
		{"-7", "/", "0", "-Infinity"},
		{"0", "/", "0", "NaN"},
		{"", "+", "1", "NaN"},
		{"2", "-", "5", "-3"},
		{"6", "*", "7", "42"},
		{"1,5", "+", "1", "2,5"},
		{"0,1", "+", "0,2", "0,300000"},
		{"1.2.3", "+", "0", "1,2"},
		{"12abc", "*", "2", "24"},
		{"1", "?", "2", "0"},
		{"1", "", "2", "0"},
		{"10", "^", "21", "1e+21"},
		{"1", "/", "8", "0,125"},
		{"0,0078125", "*", "1", "0,007813"},
		{"-0,0078125", "*", "1", "-0,007813"},
		{"1", "/", "3000000", "0,000000"},
		{"1", "^", "Infinity", "NaN"},
		{"2", "^", "0,5", "1,414214"},
	}
	for _, tc := range tests {
		if got := Evaluate(tc.a, tc.op, tc.b); got != tc.want {
			t.Fatalf("Evaluate(%q, %q, %q) = %q, want %q", tc.a, tc.op, tc.b, got, tc.want)
		}
	}
}

func TestEvaluateOutputFeedsBack(t *testing.T) {
	quarter := Evaluate("1", "/", "4")
	if quarter != "0,25" {
		t.Fatalf("1/4 = %q, want 0,25", quarter)
	}
	if got := Evaluate(quarter, "*", "2"); got != "0,5" {
		t.Fatalf("%s*2 = %q, want 0,5", quarter, got)
	}
	if got := Evaluate(Evaluate("7", "/", "0"), "-", "1"); got != "Infinity" {
		t.Fatalf("Infinity-1 = %q, want Infinity", got)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"  -3.5", -3.5},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"1e", 1},
		{"2e+2x", 200},
		{"+Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"1e999", math.Inf(1)},
	}
	for _, tc := range tests {
		if got := parseNumber(tc.in); got != tc.want {
			t.Fatalf("parseNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", ".", "-", "abc", "NaN", "e5"} {
		if got := parseNumber(in); !math.IsNaN(got) {
			t.Fatalf("parseNumber(%q) = %v, want NaN", in, got)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1024, "1024"},
		{-3, "-3"},
		{0.05, "0.05"},
		{1.0 / 3, "0.3333333333333333"},
		{123.456, "123.456"},
		{0.000001, "0.000001"},
		{0.0000005, "5e-7"},
		{1.5e-7, "1.5e-7"},
		{1e21, "1e+21"},
		{1.25e22, "1.25e+22"},
		{123456789012345680000, "123456789012345680000"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tc := range tests {
		if got := formatNumber(tc.in); got != tc.want {
			t.Fatalf("formatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.0 / 3, "0.333333"},
		{2.0 / 3, "0.666667"},
		{0.0078125, "0.007813"},
		{-0.0078125, "-0.007813"},
		{0.1 + 0.2, "0.300000"},
		{-1e-7, "-0.000000"},
		{12.5, "12.500000"},
		{1e21, "1e+21"},
	}
	for _, tc := range tests {
		if got := formatFixed(tc.in, 6); got != tc.want {
			t.Fatalf("formatFixed(%v, 6) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsOperator(t *testing.T) {
	for _, op := range []string{"%", "^", "/", "*", "+", "-"} {
		if !IsOperator(op) {
			t.Fatalf("IsOperator(%q) = false", op)
		}
	}
	for _, op := range []string{"", "x", "=", "++"} {
		if IsOperator(op) {
			t.Fatalf("IsOperator(%q) = true", op)
		}
	}
}
