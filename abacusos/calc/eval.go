package calc

import (
	"math"
	"strings"
)

// maxFractionDigits bounds the fractional digits of a displayed result.
const maxFractionDigits = 6

// IsOperator reports whether Evaluate knows op.
func IsOperator(op string) bool {
	switch op {
	case "%", "^", "/", "*", "+", "-":
		return true
	}
	return false
}

// Evaluate applies op to the operand texts a and b and returns the result text.
//
// Operands may use ',' as the decimal separator; the result always does.
// Unparsable operands evaluate as NaN and division by zero yields Infinity;
// both are returned as text rather than errors. An unknown op yields "0".
func Evaluate(a, op, b string) string {
	x := parseNumber(strings.Replace(a, ",", ".", 1))
	y := parseNumber(strings.Replace(b, ",", ".", 1))

	var result float64
	switch op {
	case "%":
		result = x / 100
	case "^":
		result = pow(x, y)
	case "/":
		result = x / y
	case "*":
		result = x * y
	case "+":
		result = x + y
	case "-":
		result = x - y
	}

	return strings.Replace(formatResult(result), ".", ",", 1)
}

func formatResult(v float64) string {
	s := formatNumber(v)
	if v == math.Trunc(v) {
		return s
	}
	i := strings.IndexByte(s, '.')
	if i < 0 || len(s)-i-1 <= maxFractionDigits {
		return s
	}
	return formatFixed(v, maxFractionDigits)
}

// pow differs from math.Pow where the display conventions require NaN:
// a NaN exponent, and a base of magnitude 1 raised to an infinite power.
func pow(x, y float64) float64 {
	if math.IsNaN(y) {
		return math.NaN()
	}
	if math.IsInf(y, 0) && math.Abs(x) == 1 {
		return math.NaN()
	}
	return math.Pow(x, y)
}
