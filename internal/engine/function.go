package engine

import (
	"math"
	"strconv"
	"strings"
)

// Function is a unary scientific function applied to the display value.
type Function int

// Function values.
const (
	Sin Function = iota
	Cos
	Tan
	Log10
	Ln
	Sqrt
	Square
	Cube
	Reciprocal
	Exp
)

// Functions lists every unary function.
func Functions() []Function {
	return []Function{Sin, Cos, Tan, Log10, Ln, Sqrt, Square, Cube, Reciprocal, Exp}
}

// ParseFunction looks up a function by the name its String method returns.
func ParseFunction(name string) (Function, bool) {
	for _, fn := range Functions() {
		if strings.EqualFold(fn.String(), name) {
			return fn, true
		}
	}

	return 0, false
}

// Apply computes fn(v). Trig functions convert v from degrees first when
// unit is Degrees.
func (fn Function) Apply(v float64, unit AngleUnit) float64 {
	if fn.IsTrig() {
		v = unit.toRadians(v)
	}

	switch fn {
	case Sin:
		return math.Sin(v)
	case Cos:
		return math.Cos(v)
	case Tan:
		return math.Tan(v)
	case Log10:
		return log10(v)
	case Ln:
		return math.Log(v)
	case Sqrt:
		return math.Sqrt(v)
	case Square:
		return math.Pow(v, 2)
	case Cube:
		return math.Pow(v, 3)
	case Reciprocal:
		return 1 / v
	case Exp:
		return math.Exp(v)
	}

	return v
}

// IsTrig reports whether fn depends on the angle unit.
func (fn Function) IsTrig() bool {
	return fn == Sin || fn == Cos || fn == Tan
}

// String returns the function name.
func (fn Function) String() string {
	switch fn {
	case Sin:
		return "sin"
	case Cos:
		return "cos"
	case Tan:
		return "tan"
	case Log10:
		return "log10"
	case Ln:
		return "ln"
	case Sqrt:
		return "sqrt"
	case Square:
		return "square"
	case Cube:
		return "cube"
	case Reciprocal:
		return "reciprocal"
	case Exp:
		return "exp"
	}

	return "unknown"
}

// powerOfTenSlack bounds how far math.Log10 lands from the exponent of an
// exact power of ten.
const powerOfTenSlack = 1e-9

// log10 is math.Log10, except that exact powers of ten give exact integers.
func log10(v float64) float64 {
	l := math.Log10(v)
	if math.IsNaN(l) || math.IsInf(l, 0) {
		return l
	}

	n := math.Round(l)
	if n == l || math.Abs(l-n) > powerOfTenSlack {
		return l
	}

	p, err := strconv.ParseFloat("1e"+strconv.Itoa(int(n)), 64)
	if err != nil || p != v {
		return l
	}

	return n
}
