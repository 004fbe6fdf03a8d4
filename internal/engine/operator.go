package engine

import (
	"math"
	"strings"
)

// Operator is a pending binary operation.
type Operator int

// Operator values. OpNone means no operation is pending.
const (
	OpNone Operator = iota
	Add
	Subtract
	Multiply
	Divide
	Power
	Root
)

// Operators lists every binary operator, in keypad order.
func Operators() []Operator {
	return []Operator{Add, Subtract, Multiply, Divide, Power, Root}
}

// ParseOperator looks up an operator by the name its String method returns.
func ParseOperator(name string) (Operator, bool) {
	for _, op := range Operators() {
		if strings.EqualFold(op.String(), name) {
			return op, true
		}
	}

	return OpNone, false
}

// Apply computes a op b. Undefined results come back as NaN or ±Inf.
func (op Operator) Apply(a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Subtract:
		return a - b
	case Multiply:
		return a * b
	case Divide:
		return a / b
	case Power:
		return pow(a, b)
	case Root:
		return pow(a, 1/b)
	case OpNone:
		return b
	}

	return b
}

// String returns the operator name.
func (op Operator) String() string {
	switch op {
	case OpNone:
		return "none"
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	case Power:
		return "power"
	case Root:
		return "root"
	}

	return "unknown"
}

// Symbol returns the keypad symbol for the operator.
func (op Operator) Symbol() string {
	switch op {
	case OpNone:
		return ""
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Power:
		return "^"
	case Root:
		return "root"
	}

	return "?"
}

// pow is math.Pow with the two cases where ECMAScript Math.pow differs:
// a NaN exponent is always NaN, and ±1 raised to ±Inf is NaN.
func pow(a, b float64) float64 {
	if math.IsNaN(b) {
		return math.NaN()
	}

	if math.IsInf(b, 0) && math.Abs(a) == 1 {
		return math.NaN()
	}

	return math.Pow(a, b)
}
