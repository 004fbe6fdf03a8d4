package engine

import (
	"math"
	"strings"
)

// AngleUnit selects how trig functions read their argument.
type AngleUnit int

// AngleUnit values. Radians is the default.
const (
	Radians AngleUnit = iota
	Degrees
)

// ParseAngleUnit looks up an angle unit by name. "rad" and "deg" are accepted.
func ParseAngleUnit(name string) (AngleUnit, bool) {
	switch strings.ToLower(name) {
	case "radians", "rad":
		return Radians, true
	case "degrees", "deg":
		return Degrees, true
	}

	return Radians, false
}

// String returns the unit name.
func (u AngleUnit) String() string {
	switch u {
	case Radians:
		return "radians"
	case Degrees:
		return "degrees"
	}

	return "unknown"
}

func (u AngleUnit) toRadians(v float64) float64 {
	if u == Degrees {
		return v * math.Pi / 180
	}

	return v
}
