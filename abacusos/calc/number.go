package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// parseNumber parses the longest numeric prefix of s.
//
// Leading whitespace is skipped. "1.2.3" is 1.2, "12abc" is 12, "-Infinity"
// is -Inf and text without a numeric prefix (including "") is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	end := i

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = j
		}
	}

	// Out-of-range values come back as ±Inf or 0 together with ErrRange,
	// which is the value we want.
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !isRangeErr(err) {
		return math.NaN()
	}
	return v
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// formatNumber renders v with the shortest digits that round-trip.
//
// Magnitudes in [1e-6, 1e21) use plain decimal notation, everything else
// uses an exponent ("1e+21", "5e-7").
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	mant, expText, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	digits := strings.Replace(mant, ".", "", 1)
	exp, _ := strconv.Atoi(expText)

	k := len(digits)
	n := exp + 1 // digits before the decimal point
	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}

	e := n - 1
	expSign := "+"
	if e < 0 {
		expSign = "-"
		e = -e
	}
	m := digits[:1]
	if k > 1 {
		m += "." + digits[1:]
	}
	return sign + m + "e" + expSign + strconv.Itoa(e)
}

// formatFixed renders v with exactly frac fractional digits.
//
// Rounding is half away from zero on the exact binary value of v.
// Magnitudes of 1e21 and above fall back to formatNumber.
func formatFixed(v float64, frac int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= 1e21 {
		return formatNumber(v)
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	r := new(big.Rat).SetFloat64(v)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(frac)), nil)

	// floor((2*num*scale + den) / (2*den))
	num := new(big.Int).Mul(r.Num(), scale)
	num.Lsh(num, 1)
	num.Add(num, r.Denom())
	den := new(big.Int).Lsh(r.Denom(), 1)
	n := num.Quo(num, den).String()

	if len(n) <= frac {
		n = strings.Repeat("0", frac-len(n)+1) + n
	}
	return sign + n[:len(n)-frac] + "." + n[len(n)-frac:]
}
