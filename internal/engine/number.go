package engine

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Class describes what kind of number a display holds.
type Class int

// Class values.
const (
	Finite Class = iota
	Infinite
	NotANumber
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Finite:
		return "finite"
	case Infinite:
		return "infinite"
	case NotANumber:
		return "nan"
	}

	return "unknown"
}

// ClassOf classifies v.
func ClassOf(v float64) Class {
	switch {
	case math.IsNaN(v):
		return NotANumber
	case math.IsInf(v, 0):
		return Infinite
	default:
		return Finite
	}
}

// FormatNumber renders v the way a JavaScript number prints: shortest
// round-trip digits, fixed notation for decimal exponents in [-7, 21),
// exponent notation outside that range.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0" // covers negative zero too
	case v < 0:
		return "-" + FormatNumber(-v)
	}

	digits, exp := shortestDigits(v)
	k := len(digits)
	n := exp + 1 // position of the decimal point relative to the digits

	switch {
	case k <= n && n <= maxFixedExponent:
		return digits + strings.Repeat("0", n-k)
	case 0 < n && n <= maxFixedExponent:
		return digits[:n] + "." + digits[n:]
	case minFixedExponent < n && n <= 0:
		return "0." + strings.Repeat("0", -n) + digits
	}

	sign := "+"
	if n-1 < 0 {
		sign = "-"
	}

	mantissa := digits[:1]
	if k > 1 {
		mantissa += "." + digits[1:]
	}

	return mantissa + "e" + sign + strconv.Itoa(absInt(n-1))
}

// ParseNumber reads the longest numeric prefix of s the way JavaScript's
// parseFloat does. Text with no numeric prefix, "NaN" included, yields NaN.
func ParseNumber(s string) float64 {
	prefix := numericPrefix.FindString(strings.TrimLeft(s, " \t\n\r"))
	if prefix == "" {
		return math.NaN()
	}

	if strings.HasSuffix(prefix, "Infinity") {
		if strings.HasPrefix(prefix, "-") {
			return math.Inf(-1)
		}

		return math.Inf(1)
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(prefix, "."), 64)
	if err != nil {
		// out of range still carries ±Inf or 0, which is what parseFloat gives
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v
		}

		return math.NaN()
	}

	return v
}

// unexported constants.
const (
	maxFixedExponent = 21
	minFixedExponent = -6
)

//nolint:gochecknoglobals // compiled once
var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

func absInt(i int) int {
	if i < 0 {
		return -i
	}

	return i
}

// shortestDigits returns the shortest significant digits that round-trip v,
// and the decimal exponent of the first digit. v must be finite and positive.
func shortestDigits(v float64) (string, int) {
	s := strconv.FormatFloat(v, 'e', -1, 64) // d.ddddde±XX
	mantissa, exponent, _ := strings.Cut(s, "e")

	// 'e' formatting of a finite value always writes a signed decimal exponent.
	exp, _ := strconv.Atoi(exponent)

	return strings.Replace(mantissa, ".", "", 1), exp
}
