package value

import (
	"math"
	"strconv"
	"strings"
)

// numberPrecision is the count of significant digits used by FormatNumber.
const numberPrecision = 14

// FormatNumber formats n with 14 significant digits, dropping trailing zeros,
// the way printf's "%.14g" does: 0.1+0.2 is "0.3", 1e15 is "1e+15".
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}

	return strconv.FormatFloat(n, 'g', numberPrecision, 64)
}

// FormatKey formats a key for key-value iteration output. String keys are
// verbatim, Number keys use [FormatNumber], and other kinds produce "".
func FormatKey(k Value) string {
	switch k.kind {
	case KindString:
		return k.s
	case KindNumber:
		return FormatNumber(k.n)
	case KindNull, KindBoolean, KindTable, KindCallable:
		return ""
	default:
		return ""
	}
}

// ParseNumberPrefix converts the longest numeric prefix of s to a float64,
// ignoring leading whitespace and any trailing text. It returns 0 when s has
// no numeric prefix. Decimal, hexadecimal, "inf", "infinity" and "nan" forms
// are recognized, matching C's atof.
func ParseNumberPrefix(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\v\f\r")

	i := 0
	neg := false

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	rest := strings.ToLower(s[i:])

	switch {
	case strings.HasPrefix(rest, "infinity"), strings.HasPrefix(rest, "inf"):
		if neg {
			return math.Inf(-1)
		}

		return math.Inf(1)

	case strings.HasPrefix(rest, "nan"):
		return math.NaN()

	case len(rest) > 2 && rest[0] == '0' && rest[1] == 'x' && isHex(rest[2]) ||
		len(rest) > 3 && rest[:3] == "0x." && isHex(rest[3]):
		return signed(parseHexPrefix(rest[2:]), neg)
	}

	end := scanDecimal(s, i)
	if end == i {
		return 0
	}

	// Out of range input still yields ±Inf or 0 alongside the error.
	f, _ := strconv.ParseFloat(s[:end], 64)

	return f
}

// scanDecimal returns the end of the decimal floating-point literal starting
// at s[i:], or i when there is none.
func scanDecimal(s string, i int) int {
	start := i
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
		return start
	}

	// The exponent only counts when at least one digit follows it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}

		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}

			i = j
		}
	}

	return i
}

func parseHexPrefix(s string) float64 {
	var (
		mant  float64
		scale int
		i     int
		frac  bool
	)

	for ; i < len(s); i++ {
		c := s[i]

		switch {
		case isHex(c):
			mant = mant*16 + float64(hexVal(c))
			if frac {
				scale -= 4
			}

			continue

		case c == '.' && !frac:
			frac = true

			continue
		}

		break
	}

	if i+1 < len(s) && s[i] == 'p' {
		j := i + 1
		sign := 1

		if s[j] == '+' || s[j] == '-' {
			if s[j] == '-' {
				sign = -1
			}

			j++
		}

		if j < len(s) && isDigit(s[j]) {
			exp := 0
			for j < len(s) && isDigit(s[j]) && exp < 1<<20 {
				exp = exp*10 + int(s[j]-'0')
				j++
			}

			scale += sign * exp
		}
	}

	return math.Ldexp(mant, scale)
}

func signed(f float64, neg bool) float64 {
	if neg {
		return -f
	}

	return f
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f')
}

func hexVal(c byte) int {
	if isDigit(c) {
		return int(c - '0')
	}

	return int(c-'a') + 10
}

// compareText orders a against b byte-wise, as strcmp does.
func compareText(a, b string) int {
	return strings.Compare(a, b)
}
