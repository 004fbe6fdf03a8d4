// Package engine implements keycalc's arithmetic state machine.
//
// A State is an immutable value. Every input operation is a method with a
// value receiver that returns the next State, so a caller holding an older
// State never sees it change.
package engine

import "fmt"

// Digit is a single decimal digit key, 0 through 9.
type Digit uint8

// MaxDigit is the largest digit key.
const MaxDigit Digit = 9

// State is the complete calculator state after some sequence of input events.
type State struct {
	display      string
	firstOperand float64
	hasFirst     bool
	operator     Operator
	awaiting     bool
	memory       float64
	scientific   bool
	angle        AngleUnit
}

// New returns the state at the start of a session.
func New() State {
	return State{display: "0"}
}

// AngleUnit returns the unit trig functions use.
func (s State) AngleUnit() AngleUnit {
	return s.angle
}

// AwaitingOperand reports whether the next digit starts a fresh operand.
func (s State) AwaitingOperand() bool {
	return s.awaiting
}

// Classify reports whether the display holds a finite number, an infinity, or NaN.
func (s State) Classify() Class {
	return ClassOf(s.Value())
}

// Display returns the display text.
func (s State) Display() string {
	return s.display
}

// Memory returns the memory register.
func (s State) Memory() float64 {
	return s.memory
}

// Operator returns the pending operator, or OpNone.
func (s State) Operator() Operator {
	return s.operator
}

// Pending returns the left operand and operator of a pending binary
// operation. ok is false when no operand has been captured.
func (s State) Pending() (first float64, op Operator, ok bool) {
	return s.firstOperand, s.operator, s.hasFirst
}

// Scientific reports whether the scientific function set is enabled.
func (s State) Scientific() bool {
	return s.scientific
}

// String summarizes the state for logs and failure messages.
func (s State) String() string {
	first := "-"
	if s.hasFirst {
		first = FormatNumber(s.firstOperand)
	}

	return fmt.Sprintf("display=%q first=%s op=%s awaiting=%t memory=%s scientific=%t angle=%s",
		s.display, first, s.operator, s.awaiting, FormatNumber(s.memory), s.scientific, s.angle)
}

// Value returns the display parsed as a number.
func (s State) Value() float64 {
	return ParseNumber(s.display)
}

// WithMemory returns s with the memory register set to m. Used to restore
// a session.
func (s State) WithMemory(m float64) State {
	s.memory = m
	return s
}
