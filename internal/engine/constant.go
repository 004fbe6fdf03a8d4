package engine

import (
	"math"
	"strings"
)

// Constant is a value that can be inserted into the display.
type Constant int

// Constant values.
const (
	Pi Constant = iota
	E
)

// Constants lists every insertable constant.
func Constants() []Constant {
	return []Constant{Pi, E}
}

// ParseConstant looks up a constant by name.
func ParseConstant(name string) (Constant, bool) {
	for _, c := range Constants() {
		if strings.EqualFold(c.String(), name) {
			return c, true
		}
	}

	return 0, false
}

// String returns the constant name.
func (c Constant) String() string {
	switch c {
	case Pi:
		return "pi"
	case E:
		return "e"
	}

	return "unknown"
}

// Value returns the constant at full float64 precision.
func (c Constant) Value() float64 {
	switch c {
	case Pi:
		return math.Pi
	case E:
		return math.E
	}

	return math.NaN()
}
